package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/config"
	"github.com/maghams62/launcher/msg"
	"github.com/maghams62/launcher/search"
)

const requestTimeout = 15 * time.Second

func searchCmd(ctx context.Context, s search.Searcher, gen uint64, text string, limit int) tea.Cmd {
	return func() tea.Msg {
		items, err := s.Search(ctx, text, limit)
		return msg.SearchResult{Gen: gen, Query: text, Items: items, Err: err}
	}
}

func (m Model) loadCatalog() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	store, backend := m.catalog, m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		cmds, err := store.Load(ctx, backend.ListCommands)
		return msg.CatalogLoaded{Commands: cmds, Err: err}
	}
}

func (m Model) endpointCmd(c client.Command) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := backend.PostEndpoint(ctx, c.Endpoint, c.ID)
		return msg.EndpointResult{CommandID: c.ID, Err: err}
	}
}

func (m Model) openCmd(path string, external bool) tea.Cmd {
	if m.opener == nil {
		return nil
	}
	o := m.opener
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var err error
		if external {
			err = o.Open(ctx, path)
		} else {
			err = o.Reveal(ctx, path)
		}
		return msg.OpenResult{Path: path, External: external, Err: err}
	}
}

func (m Model) copyCmd(path string) tea.Cmd {
	clip := m.clipboard
	return func() tea.Msg {
		return msg.CopyResult{Path: path, Err: clip(path)}
	}
}

func (m Model) saveSettings(cfg config.Config) tea.Cmd {
	dir := m.profileDir
	return func() tea.Msg {
		if dir == "" {
			return msg.SettingsSaved{Config: cfg}
		}
		return msg.SettingsSaved{Config: cfg, Err: config.Save(dir, cfg)}
	}
}

// waitReload blocks on the watcher channel. The handler re-arms it.
func waitReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return msg.ConfigReloaded{Config: r.Config, Err: r.Err}
	}
}
