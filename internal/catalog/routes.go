package catalog

import (
	"github.com/vango-dev/toolbox/pkg/router"
)

// Categories.
const (
	CategoryQuery         = "query"
	CategoryTools         = "tools"
	CategoryEntertainment = "entertainment"
)

// View keys shared by several routes.
const (
	ViewHome     = "Home"
	ViewCategory = "CategoryPage"
	ViewNotFound = "NotFound"
)

// categoryPages maps the category listing routes to the category they list.
var categoryPages = map[string]string{
	"QueryPage":         CategoryQuery,
	"ToolsPage":         CategoryTools,
	"EntertainmentPage": CategoryEntertainment,
}

// CategoryTitles are the display names of the categories.
var CategoryTitles = map[string]string{
	CategoryQuery:         "Queries",
	CategoryTools:         "Tools",
	CategoryEntertainment: "Entertainment",
}

// Routes returns the application route table in declaration order.
// The slice is fresh on every call.
func Routes() []router.RouteDefinition {
	return []router.RouteDefinition{
		{Path: "/", Name: "Home", View: ViewHome, Title: "Home"},
		{Path: "/query", Name: "QueryPage", View: ViewCategory, Title: "Queries"},
		{Path: "/tools", Name: "ToolsPage", View: ViewCategory, Title: "Tools"},
		{Path: "/entertainment", Name: "EntertainmentPage", View: ViewCategory, Title: "Entertainment"},

		{Path: "/exchange-rate", Name: "ExchangeRate", Category: CategoryTools, Title: "Exchange rates"},
		{Path: "/oil-price", Name: "OilPrice", Category: CategoryQuery, Title: "Oil prices"},
		{Path: "/hot-list", Name: "HotList", Category: CategoryQuery, Title: "Trending lists"},
		{Path: "/history-today", Name: "HistoryToday", Category: CategoryQuery, Title: "This day in history"},
		{Path: "/genshin-images", Name: "GenshinImages", Category: CategoryEntertainment, Title: "Genshin images"},
		{Path: "/random-girl-images", Name: "RandomGirlImages", Category: CategoryEntertainment, Title: "Random portraits"},
		{Path: "/random-wallpaper", Name: "RandomWallpaper", Category: CategoryEntertainment, Title: "Random wallpaper"},
		{Path: "/random-girl-video", Name: "RandomGirlVideo", Category: CategoryEntertainment, Title: "Random video"},
		{Path: "/driving-test", Name: "DrivingTest", Category: CategoryTools, Title: "Driving test questions"},
		{Path: "/translate", Name: "Translate", Category: CategoryTools, Title: "Translate"},
		{Path: "/gold-price", Name: "GoldPrice", Category: CategoryQuery, Title: "Gold prices"},
		{Path: "/car-price", Name: "CarPrice", Category: CategoryQuery, Title: "Car prices"},
		{Path: "/solver", Name: "Solver", Title: "Solver"},
		{Path: "/music-parser", Name: "MusicParser", Category: CategoryTools, Title: "Music link parser"},
		{Path: "/mv-parser", Name: "MVParser", Category: CategoryTools, Title: "MV link parser"},
		{Path: "/random-number", Name: "RandomNumber", Category: CategoryTools, Title: "Random number"},
		{Path: "/express-query", Name: "ExpressQuery", Category: CategoryTools, Title: "Parcel tracking"},
		{Path: "/ip-query", Name: "IPQuery", Category: CategoryTools, Title: "IP lookup"},
		{Path: "/qq-avatar", Name: "QQAvatar", Category: CategoryTools, Title: "QQ avatar"},
		{Path: "/concert-schedule", Name: "ConcertSchedule", Category: CategoryTools, Title: "Concert schedule"},
		{Path: "/ai-assistant", Name: "AIAssistant", Category: CategoryTools, Title: "AI assistant"},
		{Path: "/glassous-search", Name: "GlassousSearch", Title: "Glassous search"},
		{Path: "/kfc-thursday", Name: "KFCThursday", Category: CategoryEntertainment, Title: "KFC Thursday"},
		{Path: "/nonsense-article", Name: "NonsenseArticle", Category: CategoryEntertainment, Title: "Nonsense article"},
		{Path: "/kuaikan-comic", Name: "KuaiKanComic", Category: CategoryEntertainment, Title: "Comics"},
		{Path: "/tomato-novel", Name: "TomatoNovel", Category: CategoryEntertainment, Title: "Novels"},
		{Path: "/novel-chapter", Name: "NovelChapter", Category: CategoryEntertainment, Title: "Novel chapters"},
		{Path: "/novel-reader", Name: "NovelReader", Category: CategoryEntertainment, Title: "Novel reader"},

		{Path: "/not-found", Name: "NotFound", View: ViewNotFound, Title: "Page not found"},
	}
}

// NewTable builds the table from Routes.
func NewTable(opts ...router.TableOption) (*router.Table, error) {
	return router.NewTable(Routes(), opts...)
}

// CategoryOf returns the category listed by a category page route.
func CategoryOf(routeName string) (string, bool) {
	c, ok := categoryPages[routeName]
	return c, ok
}
