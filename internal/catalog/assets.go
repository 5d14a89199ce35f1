package catalog

// Asset describes how the UI renders a catalog entry.
type Asset struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Bg    string `json:"bg"`
}

const fallbackIcon = "Globe"

var assets = map[string]Asset{
	"InstagramIcon": {Icon: "InstagramIcon", Color: "text-pink-400", Bg: "bg-pink-500/10"},
	"Video":         {Icon: "Video", Color: "text-cyan-400", Bg: "bg-cyan-500/10"},
	"YoutubeIcon":   {Icon: "YoutubeIcon", Color: "text-red-500", Bg: "bg-red-500/10"},
	"FacebookIcon":  {Icon: "FacebookIcon", Color: "text-blue-500", Bg: "bg-blue-500/10"},
	"TelegramIcon":  {Icon: "TelegramIcon", Color: "text-sky-400", Bg: "bg-sky-500/10"},
	"TwitterIcon":   {Icon: "TwitterIcon", Color: "text-slate-300", Bg: "bg-slate-500/10"},
	"SnapchatIcon":  {Icon: "SnapchatIcon", Color: "text-yellow-400", Bg: "bg-yellow-500/10"},
	"DiscordIcon":   {Icon: "DiscordIcon", Color: "text-indigo-400", Bg: "bg-indigo-500/10"},
	"MusicIcon":     {Icon: "MusicIcon", Color: "text-green-400", Bg: "bg-green-500/10"},
	"TwitchIcon":    {Icon: "TwitchIcon", Color: "text-purple-500", Bg: "bg-purple-500/10"},
	"StarIcon":      {Icon: "StarIcon", Color: "text-amber-400", Bg: "bg-amber-500/10"},
	"Globe":         {Icon: "Globe", Color: "text-primary-400", Bg: "bg-primary-500/10"},
	"Zap":           {Icon: "Zap", Color: "text-purple-400", Bg: "bg-purple-500/10"},
}

// LookupAsset resolves an icon name sent by the backend. Unknown names get the globe.
func LookupAsset(name string) Asset {
	if a, ok := assets[name]; ok {
		return a
	}
	return assets[fallbackIcon]
}
