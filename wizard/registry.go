package wizard

import (
	"context"
	"sync"
	"time"

	"kartvizit.link/configs/configslog"
)

// Registry her tarayıcı oturumu için bir sihirbaz tutar. Belirtilen süre
// boyunca kullanılmayan sihirbazlar ve bekleyen dosyaları bellekten atılır.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	factory func() *Orchestrator
	entries map[string]*registryEntry
}

type registryEntry struct {
	orch     *Orchestrator
	lastSeen time.Time
}

func NewRegistry(ttl time.Duration, factory func() *Orchestrator) *Registry {
	return &Registry{
		ttl:     ttl,
		now:     time.Now,
		factory: factory,
		entries: make(map[string]*registryEntry),
	}
}

// Get oturumun sihirbazını döndürür; yoksa ya da süresi dolmuşsa yenisini oluşturur.
func (r *Registry) Get(sessionID string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	e, ok := r.entries[sessionID]
	if !ok || r.expired(e, now) {
		e = &registryEntry{orch: r.factory()}
		r.entries[sessionID] = e
	}
	e.lastSeen = now
	return e.orch
}

// Drop oturumun sihirbazını siler.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// Len kayıtlı sihirbaz sayısı.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep süresi dolmuş sihirbazları siler ve silinen sayısını döndürür.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for id, e := range r.entries {
		if r.expired(e, now) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) expired(e *registryEntry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.lastSeen) > r.ttl
}

// Run ctx kapanana kadar periyodik olarak Sweep çalıştırır.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				configslog.SLog.Debugf("Süresi dolan %d sihirbaz oturumu temizlendi", n)
			}
		}
	}
}
