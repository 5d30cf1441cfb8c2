package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/query"
)

func testCatalog() []client.Command {
	return []client.Command{
		{ID: "play", Title: "Play music", Category: "media", HandlerType: client.HandlerSpotifyControl},
		{ID: "files", Title: "Search files", Description: "Semantic file search", Category: "search", Keywords: []string{"docs"}, HandlerType: client.HandlerSlashCommand, CommandType: client.CommandWithInput},
		{ID: "email", Title: "Compose email", Description: "Draft a message", Category: "mail", Keywords: []string{"gmail", "send"}, HandlerType: client.HandlerSlashCommand, CommandType: client.CommandWithInput},
		{ID: "clear", Title: "Clear conversation", Category: "system", HandlerType: client.HandlerSystem},
		{ID: "summarize", Title: "Summarize day", Description: "Daily digest", Category: "agent", HandlerType: client.HandlerAgent},
		{ID: "stocks", Title: "Stock report", Category: "finance", HandlerType: client.HandlerSlashCommand, CommandType: client.CommandImmediate},
		{ID: "weather", Title: "Weather", Category: "info", HandlerType: client.HandlerAgent},
		{ID: "pause", Title: "Pause music", Category: "media", HandlerType: client.HandlerSpotifyControl},
	}
}

func ids(cmds []client.Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.ID)
	}
	return out
}

func TestFilter_EmptyQueryShowsFirstFiveWithoutSpotify(t *testing.T) {
	got := Filter(testCatalog(), "", false, "")
	assert.Equal(t, []string{"files", "email", "clear", "summarize", "stocks"}, ids(got))
}

func TestFilter_BareSlashListsSlashCommands(t *testing.T) {
	got := Filter(testCatalog(), "/", true, "")
	assert.Equal(t, []string{"files", "email", "stocks"}, ids(got))
}

func TestFilter_SlashTokenMatchesIDTitleKeyword(t *testing.T) {
	cat := testCatalog()
	assert.Equal(t, []string{"email"}, ids(Filter(cat, "/GMA", true, "GMA")), "keyword, case-insensitive")
	assert.Equal(t, []string{"stocks"}, ids(Filter(cat, "/stock", true, "stock")), "title")
	assert.Equal(t, []string{"files"}, ids(Filter(cat, "/fil", true, "fil")), "id")
	assert.Empty(t, Filter(cat, "/clear", true, "clear"), "system commands are not slash commands")
}

func TestFilter_TextMatchesAllFieldsExceptSpotify(t *testing.T) {
	cat := testCatalog()
	assert.Equal(t, []string{"files"}, ids(Filter(cat, "semantic", false, "")), "description")
	assert.Equal(t, []string{"clear"}, ids(Filter(cat, "SYSTEM", false, "")), "category")
	assert.Equal(t, []string{"email"}, ids(Filter(cat, "send", false, "")), "keyword")
	assert.Empty(t, Filter(cat, "music", false, ""), "spotify controls never match free text")
}

func TestFilter_PreservesCatalogOrder(t *testing.T) {
	got := Filter(testCatalog(), "e", false, "")
	assert.Equal(t, []string{"files", "email", "clear", "summarize", "stocks", "weather"}, ids(got))
}

func TestFilter_IsIdempotentAndPure(t *testing.T) {
	cat := testCatalog()
	before := testCatalog()
	first := FilterQuery(cat, query.Parse("/e"))
	second := FilterQuery(cat, query.Parse("/e"))
	assert.Equal(t, first, second)
	assert.Equal(t, before, cat, "catalog must not be mutated")

	first[0].Title = "mutated"
	assert.Equal(t, "Search files", cat[1].Title, "result must not alias the catalog")
}

func TestFilter_NilCatalog(t *testing.T) {
	assert.Empty(t, Filter(nil, "", false, ""))
	assert.NotNil(t, Filter(nil, "x", false, ""))
}
