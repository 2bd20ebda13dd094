package model

// User is a chat platform identity as reported by the gateway.
type User struct {
	ID       string
	Username string
	Bot      bool
}

// Message is an inbound chat message.
type Message struct {
	ID        string
	ChannelID string
	GuildID   string
	Author    User
	Content   string
	Mentions  []User
}

// FirstMention returns the first mentioned user, if any.
func (m *Message) FirstMention() (User, bool) {
	if len(m.Mentions) == 0 {
		return User{}, false
	}
	return m.Mentions[0], true
}

// Color is a 24-bit RGB embed color.
type Color int

const (
	ColorGreen  Color = 0x57F287
	ColorBlue   Color = 0x3498DB
	ColorYellow Color = 0xFEE75C
	ColorGold   Color = 0xF1C40F
	ColorAqua   Color = 0x1ABC9C
	ColorPurple Color = 0x9B59B6
	ColorRed    Color = 0xED4245
)

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a structured display block.
type Embed struct {
	Title       string
	Description string
	Color       Color
	Fields      []EmbedField
}

// Reply is outbound content for a channel. When ReplyTo is set the
// platform renders it as a directed reply to that message.
type Reply struct {
	Content string
	Embed   *Embed
	ReplyTo string
}

// Text builds a plain text reply.
func Text(content string) Reply {
	return Reply{Content: content}
}

// EmbedReply builds a reply carrying a single embed.
func EmbedReply(e Embed) Reply {
	return Reply{Embed: &e}
}
