package webhook

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// EmbedAuthor holds author information for an embed.
type EmbedAuthor struct {
	Name         string `json:"name"`
	URL          string `json:"url,omitempty"`
	IconURL      string `json:"icon_url,omitempty"`
	ProxyIconURL string `json:"proxy_icon_url,omitempty"`
}

// EmbedField holds a single name/value field of an embed. Fields render
// in insertion order, left to right, top to bottom; inline fields share a
// row.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter holds footer information for an embed.
type EmbedFooter struct {
	Text         string `json:"text"`
	IconURL      string `json:"icon_url,omitempty"`
	ProxyIconURL string `json:"proxy_icon_url,omitempty"`
}

// EmbedMedia holds image, thumbnail, or video information for an embed.
type EmbedMedia struct {
	URL      string `json:"url,omitempty"`
	ProxyURL string `json:"proxy_url,omitempty"`
	Height   int    `json:"height,omitempty"`
	Width    int    `json:"width,omitempty"`
}

// EmbedProvider holds provider information for an embed.
type EmbedProvider struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Embed is an optional rich-content block attached to a message. Up to
// LimitEmbeds embeds can exist on a single message. Absent fields are
// omitted from the wire form entirely, never sent as null.
//
// See https://discord.com/developers/docs/resources/channel#embed-object
type Embed struct {
	Author      *EmbedAuthor   `json:"author,omitempty"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Color       *uint32        `json:"color,omitempty"`
	Fields      []EmbedField   `json:"fields"`
	Footer      *EmbedFooter   `json:"footer,omitempty"`
	Image       *EmbedMedia    `json:"image,omitempty"`
	Thumbnail   *EmbedMedia    `json:"thumbnail,omitempty"`
	Video       *EmbedMedia    `json:"video,omitempty"`
	Provider    *EmbedProvider `json:"provider,omitempty"`
}

// NewEmbed creates an empty embed ready for fluent construction.
func NewEmbed() *Embed {
	return &Embed{Fields: []EmbedField{}}
}

// Validate checks every component of the embed against its individual
// ceiling, then checks the running character total against
// LimitEmbedTotal. Components are checked in a fixed order (author,
// title, description, footer, fields in insertion order) so the first
// oversized component is always the one reported. Returns the total
// character count of the embed. Sizes are counted in Unicode code points.
func (e *Embed) Validate() (int, error) {
	total := 0

	author := 0
	if e.Author != nil {
		author = utf8.RuneCountInString(e.Author.Name)
	}
	if author > LimitAuthorName {
		return 0, &TooBigError{Field: "author", Size: author, Max: LimitAuthorName}
	}
	total += author

	title := utf8.RuneCountInString(e.Title)
	if title > LimitTitle {
		return 0, &TooBigError{Field: "title", Size: title, Max: LimitTitle}
	}
	total += title

	desc := utf8.RuneCountInString(e.Description)
	if desc > LimitDescription {
		return 0, &TooBigError{Field: "description", Size: desc, Max: LimitDescription}
	}
	total += desc

	footer := 0
	if e.Footer != nil {
		footer = utf8.RuneCountInString(e.Footer.Text)
	}
	if footer > LimitFooterText {
		return 0, &TooBigError{Field: "footer", Size: footer, Max: LimitFooterText}
	}
	total += footer

	// AddField appends unconditionally, so the field count cap is only
	// enforced here.
	if len(e.Fields) > LimitFields {
		return 0, &TooBigError{Field: "fields", Size: len(e.Fields), Max: LimitFields}
	}

	for _, field := range e.Fields {
		name := utf8.RuneCountInString(field.Name)
		if name > LimitFieldName {
			return 0, &TooBigError{Field: "field name", Size: name, Max: LimitFieldName}
		}
		total += name

		value := utf8.RuneCountInString(field.Value)
		if value > LimitFieldValue {
			return 0, &TooBigError{Field: "field value", Size: value, Max: LimitFieldValue}
		}
		total += value
	}

	if total > LimitEmbedTotal {
		return 0, &TooBigError{Field: "embed", Size: total, Max: LimitEmbedTotal}
	}

	return total, nil
}

// SetTitle sets the title of the embed.
func (e *Embed) SetTitle(title string) *Embed {
	e.Title = title
	return e
}

// SetDescription sets the description of the embed.
func (e *Embed) SetDescription(description string) *Embed {
	e.Description = description
	return e
}

// SetURL sets the URL of the embed.
func (e *Embed) SetURL(url string) *Embed {
	e.URL = url
	return e
}

// SetTimestamp sets the timestamp of the embed content.
func (e *Embed) SetTimestamp(timestamp string) *Embed {
	e.Timestamp = timestamp
	return e
}

// SetColor sets the embed color from a hex string such as "CBA6F7" or
// "#CBA6F7". Empty or unparsable input leaves the color unset rather
// than failing the chain.
func (e *Embed) SetColor(color string) *Embed {
	if color == "" {
		return e
	}

	value, err := strconv.ParseUint(strings.TrimPrefix(color, "#"), 16, 32)
	if err != nil {
		return e
	}

	packed := uint32(value)
	e.Color = &packed
	return e
}

// SetFooter sets the footer of the embed. Empty icon URLs are omitted
// from the wire form.
func (e *Embed) SetFooter(text, iconURL, proxyIconURL string) *Embed {
	e.Footer = &EmbedFooter{
		Text:         text,
		IconURL:      iconURL,
		ProxyIconURL: proxyIconURL,
	}
	return e
}

// SetImage sets the image of the embed. Zero dimensions are omitted from
// the wire form.
func (e *Embed) SetImage(url, proxyURL string, height, width int) *Embed {
	e.Image = &EmbedMedia{
		URL:      url,
		ProxyURL: proxyURL,
		Height:   height,
		Width:    width,
	}
	return e
}

// SetThumbnail sets the thumbnail of the embed.
func (e *Embed) SetThumbnail(url, proxyURL string, height, width int) *Embed {
	e.Thumbnail = &EmbedMedia{
		URL:      url,
		ProxyURL: proxyURL,
		Height:   height,
		Width:    width,
	}
	return e
}

// SetVideo sets the video of the embed.
func (e *Embed) SetVideo(url, proxyURL string, height, width int) *Embed {
	e.Video = &EmbedMedia{
		URL:      url,
		ProxyURL: proxyURL,
		Height:   height,
		Width:    width,
	}
	return e
}

// SetProvider sets the provider of the embed.
func (e *Embed) SetProvider(name, url string) *Embed {
	e.Provider = &EmbedProvider{
		Name: name,
		URL:  url,
	}
	return e
}

// SetAuthor sets the author of the embed.
func (e *Embed) SetAuthor(name, url, iconURL, proxyIconURL string) *Embed {
	e.Author = &EmbedAuthor{
		Name:         name,
		URL:          url,
		IconURL:      iconURL,
		ProxyIconURL: proxyIconURL,
	}
	return e
}

// AddField appends a field to the embed. The append is unconditional;
// the LimitFields ceiling is checked by Validate.
func (e *Embed) AddField(name, value string, inline bool) *Embed {
	e.Fields = append(e.Fields, EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	})
	return e
}
