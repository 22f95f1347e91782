package steamapi

// Player is a public player summary as returned by ISteamUser/GetPlayerSummaries
type Player struct {
	SteamID                  string `json:"steamid"`
	PersonaName              string `json:"personaname"`
	ProfileURL               string `json:"profileurl"`
	Avatar                   string `json:"avatar"`
	AvatarMedium             string `json:"avatarmedium"`
	AvatarFull               string `json:"avatarfull"`
	PersonaState             int    `json:"personastate"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	LastLogoff               int64  `json:"lastlogoff,omitempty"`
	RealName                 string `json:"realname,omitempty"`
	CountryCode              string `json:"loccountrycode,omitempty"`
}

type playerSummariesResponse struct {
	Response *struct {
		Players []Player `json:"players"`
	} `json:"response"`
}
