package message

type SourceType byte

// MessageSourceType 常量
const (
	SourceGuildChannel SourceType = 1 << iota
	SourceDirect
	SourceGroupDirect
)

func (t SourceType) String() string {
	switch t {
	case SourceGuildChannel:
		return "guild channel"
	case SourceDirect:
		return "direct"
	case SourceGroupDirect:
		return "group direct"
	default:
		return "unknown"
	}
}

// Source 消息来源
type Source struct {
	SourceType SourceType
	GuildID    string // empty outside of guilds
	ChannelID  string
}
