package models

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusIdle    = "idle"
)

const (
	ThemeCyan    = "cyan"
	ThemeMagenta = "magenta"
	ThemeLime    = "lime"
)

// Role tags mark the seeded roles. New members land in the newbie-tagged
// role, server creators in the admin-tagged one.
const (
	RoleTagAdmin  = "admin"
	RoleTagNewbie = "newbie"
)

type User struct {
	ID            int64  `json:"id,string"`
	Name          string `json:"name"`
	AvatarUrl     string `json:"avatarUrl"`
	Status        string `json:"status"`
	Level         int64  `json:"level"`
	Xp            int64  `json:"xp"`
	XpToNextLevel int64  `json:"xpToNextLevel"`
	Password      []byte `json:"-"`
}

type XpEvent struct {
	Reason    string `json:"reason"`
	Amount    int64  `json:"amount"`
	Timestamp string `json:"timestamp"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type Server struct {
	ID         int64  `json:"id,string"`
	OwnerID    int64  `json:"ownerID,string"`
	InviteCode string `json:"inviteCode"`
	Name       string `json:"name"`
	ImageUrl   string `json:"imageUrl"`
	Theme      string `json:"theme"`
}

type Role struct {
	ID          int64    `json:"id,string"`
	ServerID    int64    `json:"serverID,string"`
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	Icon        string   `json:"icon"`
	Tag         string   `json:"tag,omitempty"`
	Permissions []string `json:"permissions"`
}

type Channel struct {
	ID       int64  `json:"id,string"`
	ServerID int64  `json:"serverID,string"`
	Name     string `json:"name"`
}

type Message struct {
	ID        int64  `json:"id,string"`
	ChannelID int64  `json:"channelID,string"`
	UserID    int64  `json:"userID,string"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Author    User   `json:"author"`
}

// ServerMember is a join row resolved against users at read time, so the
// embedded user fields can never drift from the canonical record.
type ServerMember struct {
	User  User   `json:"user"`
	Roles []Role `json:"roles"`
}

type ConfigFile struct {
	Address           string
	Port              string
	BehindNginx       bool
	TlsCert           string
	TlsKey            string
	PrintHttpRequests bool
	JwtSecret         string
	SnowflakeWorkerID int64
	SelfContained     bool
	DbUser            string
	DbPassword        string
	DbAddress         string
	DbPort            string
	DbDatabase        string
	RedisAddress      string
	RedisPassword     string
}
