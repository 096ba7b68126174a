package engine

// LLM prompt templates: data only, no logic.

// FormattingGuidance is appended to transcript tool descriptions and used by
// the summary prompts.
const FormattingGuidance = `FORMATTING GUIDANCE (optional - user instructions override): When creating summaries, consider using: **Key Points with Timestamps:** Use [MM:SS] or [HH:MM:SS] inline references. **Structure:** Break into logical sections. **Context:** Include video title and channel. Example: 'The speaker explains TypeScript generics [05:30] and shows practical examples [08:15].' This formatting is optional - always follow any specific user instructions instead.`

// summarySystemPrompt frames the model for transcript summaries.
const summarySystemPrompt = `You summarize YouTube video transcripts for busy readers.
Use ONLY the transcript you are given. Do NOT invent information.
Answer in the SAME LANGUAGE as the transcript.`

// summaryPrompt asks for a timestamped summary.
// Args: video URL, timestamped transcript.
const summaryPrompt = `Summarize the video below in markdown.

- Start with a 2-3 sentence overview.
- Then list 5-10 key points, each with an inline [MM:SS] or [HH:MM:SS] timestamp taken from the transcript lines.
- Group the key points into sections if the video covers distinct topics.
- Keep it under 400 words.

Video: %s

Transcript (one line per segment, prefixed with its start time):
%s`

// SummarizeVideoPrompt is the user message of the summarize_video MCP prompt.
// Args: video URL.
const SummarizeVideoPrompt = `Call the get_transcript tool with videoUrl "%s" and summarize the video.

Start with a 2-3 sentence overview, then list the key points with inline [MM:SS] or [HH:MM:SS] timestamps (use the start_ms of the chunk each point comes from). Break the summary into logical sections. Follow any specific instructions I give instead of this layout.`
