package websocket

import "sync"

// hub tracks open sessions and the games each one watches.
type hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	games   map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{
		clients: make(map[*client]struct{}),
		games:   make(map[string]map[*client]struct{}),
	}
}

func (that *hub) add(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c] = struct{}{}
}

// remove - forgets the session and all of its subscriptions.
func (that *hub) remove(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, c)
	for gameID, watchers := range that.games {
		delete(watchers, c)
		if len(watchers) == 0 {
			delete(that.games, gameID)
		}
	}
}

func (that *hub) subscribe(gameID string, c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	watchers, ok := that.games[gameID]
	if !ok {
		watchers = make(map[*client]struct{})
		that.games[gameID] = watchers
	}
	watchers[c] = struct{}{}
}

// drop - removes every subscription to a game.
func (that *hub) drop(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, gameID)
}

func (that *hub) subscribers(gameID string) []*client {
	that.mu.RLock()
	defer that.mu.RUnlock()

	watchers := make([]*client, 0, len(that.games[gameID]))
	for c := range that.games[gameID] {
		watchers = append(watchers, c)
	}

	return watchers
}

func (that *hub) all() []*client {
	that.mu.RLock()
	defer that.mu.RUnlock()

	clients := make([]*client, 0, len(that.clients))
	for c := range that.clients {
		clients = append(clients, c)
	}

	return clients
}
