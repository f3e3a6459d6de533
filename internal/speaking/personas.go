package speaking

import "slices"

var personas = []string{
	"1940s_noir_detective",
	"academic_warlord",
	"ancient_alien_theorist",
	"ancient_roman_general",
	"arctic_prospector",
	"artisan_magnate",
	"astral_plane_uber_driver",
	"baas_onboarder",
	"bitcoin_maximalist",
	"buddhist_monk",
	"climate_engineer",
	"corporate_girlboss",
	"cpp_veteran",
	"crypto_patriarch",
	"cyberpunk_grandma",
	"data_baron",
	"debate_champion",
	"deep_sea_therapist",
	"environmental_activist",
	"factory_patriarch",
	"fading_diplomat",
	"forensic_accountant",
	"french_renaissance_painter",
	"futuristic_ai_philosopher",
	"genetic_aristocrat",
	"gladiator_chef",
	"golang_minimalist",
	"grafana_guru",
	"haskell_purist",
	"hospital_administrator",
	"immigration_maximalist",
	"intelligence_officer",
	"interdimensional_therapist",
	"intergalactic_barista",
	"interviewer",
	"kgb_ballerina",
	"lisp_enlightened",
	"master_sommelier",
	"media_cardinal",
	"medieval_crypto_trader",
	"medieval_plague_doctor",
	"memory_merchant",
	"military_strategist",
	"mongolian_shepherd",
	"neural_interface_mogul",
	"ninja_librarian",
	"oligarch_widow",
	"pair_programmer",
	"pharma_patriarch",
	"pirate_queen",
	"poker_champion",
	"port_master",
	"prehistoric_foodie",
	"quantum_financier",
	"quantum_mechanic",
	"quantum_physicist",
	"renaissance_gym_bro",
	"renaissance_soundcloud_rapper",
	"revolutionary_hacker",
	"rust_evangelist",
	"southern_grandma",
	"space_exploration_robot",
	"space_industrialist",
	"stoic_philosopher",
	"stone_age_tech_support",
	"synthetic_food_baron",
	"time_traveling_influencer",
	"underground_banker",
	"urban_mining_tycoon",
	"vatican_cybersecurity_officer",
	"victorian_etiquette_coach",
	"victorian_serial_killer",
	"war_correspondent",
	"waste_baron",
	"water_merchant",
}

// Personas returns the catalog of speaking-bot personas in display order.
// The returned slice is a copy.
func Personas() []string {
	return slices.Clone(personas)
}

// IsKnownPersona reports whether name is in the persona catalog.
func IsKnownPersona(name string) bool {
	return slices.Contains(personas, name)
}

// UnknownPersonas returns the names not present in the catalog, in input order.
func UnknownPersonas(names []string) []string {
	var unknown []string
	for _, name := range names {
		if !IsKnownPersona(name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
