package authz

import (
	"sort"
	"sync"
)

// SecuredAction is one discovered (method, path) route identity that requires
// a dynamic permission. The set is built once from route registration, not
// from the database.
type SecuredAction struct {
	HttpMethod string `json:"http_method"`
	Path       string `json:"path"`
	Permission string `json:"permission"`
}

// Registry collects the dynamically secured actions as routes register their
// permission guards. Registration happens during startup wiring; reads happen
// per request, so the map is guarded for safety rather than contention.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]SecuredAction
}

func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]SecuredAction)}
}

func (r *Registry) Register(httpMethod, path, permission string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := httpMethod + " " + path
	r.actions[key] = SecuredAction{
		HttpMethod: httpMethod,
		Path:       path,
		Permission: permission,
	}
}

// DynamicallySecuredActions returns the discovered set, ordered for stable
// presentation in the permissions admin UI.
func (r *Registry) DynamicallySecuredActions() []SecuredAction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]SecuredAction, 0, len(r.actions))
	for _, action := range r.actions {
		list = append(list, action)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Path != list[j].Path {
			return list[i].Path < list[j].Path
		}
		return list[i].HttpMethod < list[j].HttpMethod
	})
	return list
}
