package hub

// Wire format: event name, newline, JSON payload.
const (
	ServerModified = "ServerModified"

	ChannelCreated = "ChannelCreated"

	MessageCreated = "MessageCreated"

	MemberJoined   = "MemberJoined"
	MemberModified = "MemberModified"
	MemberKicked   = "MemberKicked"

	RoleCreated = "RoleCreated"
)

const (
	ChannelTypeChannel    = "channel"
	ChannelTypeServer     = "server"
	ChannelTypeServerList = "server_list"
)
