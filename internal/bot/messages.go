package bot

// Texts sent back to the users
const (
	WelcomeMessage = `Hello! 👋

🎬 Welcome to YouTube Transcript Bot!

Send me a YouTube video link and I'll extract the transcript with timestamps for you.

Commands:
/start - Start the bot
/help - Show this help message

Just paste any YouTube URL and I'll do the rest! 📝`

	HelpMessage = `🔧 How to use this bot:

1. Send me a YouTube video link (any format)
2. I'll extract the transcript with timestamps
3. You'll receive a downloadable .txt file

Supported URL formats:
• https://www.youtube.com/watch?v=VIDEO_ID
• https://youtu.be/VIDEO_ID
• https://youtube.com/watch?v=VIDEO_ID
• https://m.youtube.com/watch?v=VIDEO_ID

Note: Only videos with available transcripts/subtitles can be processed.`

	NotYouTubeMessage = "Please send a valid YouTube video URL.\n\n" +
		"Example formats:\n" +
		"• https://www.youtube.com/watch?v=VIDEO_ID\n" +
		"• https://youtu.be/VIDEO_ID"

	ProcessingMessage = "🔄 Processing your video... Please wait..."
	SuccessMessage    = "✅ Transcript extracted successfully! Here's your file:"

	ErrNoTranscriptMessage = "❌ Sorry, this video doesn't have any available transcripts or subtitles."
	ErrInvalidURLMessage   = "❌ Please send a valid YouTube video URL."
	ErrGeneralMessage      = "❌ An error occurred while processing the video. Please try again."
	ErrUnexpectedMessage   = "An unexpected error occurred. Please try again later."
)

// Number of available tracks listed when no transcript was found
const availableLimit = 5

// Telegram rejects longer texts
const maxMessageLength = 4096
