package webhook

// DefaultRootURL is the base endpoint for the Discord Webhook API.
const DefaultRootURL = "https://discord.com/api/v10/webhooks"

// Limits enforced by the Discord API. Every size check performed by
// Validate resolves to exactly one of these constants.
//
// See https://discord.com/developers/docs/resources/channel#embed-object-embed-limits
// and https://discord.com/developers/docs/resources/webhook#execute-webhook
const (
	// LimitEmbeds is the maximum number of embeds on a single message.
	LimitEmbeds = 10

	// LimitFields is the maximum number of fields on a single embed.
	LimitFields = 25

	// LimitUsername is the maximum length of a username override.
	LimitUsername = 80

	// LimitContent is the maximum length of message content.
	LimitContent = 2000

	// LimitAuthorName is the maximum length of an embed author name.
	LimitAuthorName = 256

	// LimitTitle is the maximum length of an embed title.
	LimitTitle = 256

	// LimitDescription is the maximum length of an embed description.
	LimitDescription = 4096

	// LimitFieldName is the maximum length of an embed field name.
	LimitFieldName = 256

	// LimitFieldValue is the maximum length of an embed field value.
	LimitFieldValue = 1024

	// LimitFooterText is the maximum length of embed footer text.
	LimitFooterText = 2048

	// LimitEmbedTotal is the maximum combined character count across all
	// embeds attached to a message.
	LimitEmbedTotal = 6000
)
