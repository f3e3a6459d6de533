// Package bot_tools provides MCP tools for Meeting BaaS recording bots.
//
// Tools:
//   - joinMeeting: send a bot to a meeting
//   - leaveMeeting: remove a bot from a meeting
//   - getMeetingData: fetch recording and transcript data
//   - deleteData: delete the data of a bot
//   - retranscribeBot: transcribe a recording again
//   - botsWithMetadata: list bots with their metadata
package bot_tools
