package services

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"pirlanta/internal/models"
)

var (
	ThreatCountries = []string{
		"USA", "India", "China", "Germany", "Brazil",
		"Japan", "UAE", "Singapore", "United Kingdom", "Australia",
	}
	AttackTypes = []string{"Malware", "Phishing", "Exploit", "Ransomware", "Botnet", "DDoS"}
	Severities  = []string{"Low", "Medium", "High", "Critical"}
)

const (
	defaultThreatBuffer = 200
	monitoredSystems    = 156
	monitoringSchedule  = "24/7"
)

// События WebSocket-ленты
const (
	EventThreatNew     = "threat:new"
	EventStatsUpdate   = "stats:update"
	EventCountryUpdate = "country:update"
)

// ThreatStore: последние атаки (новые первыми) и счётчики с момента старта
type ThreatStore struct {
	mu        sync.RWMutex
	attacks   []models.Threat
	size      int
	byType    map[string]int
	byCountry map[string]int
}

func NewThreatStore(size int) *ThreatStore {
	if size <= 0 {
		size = defaultThreatBuffer
	}
	return &ThreatStore{
		attacks:   make([]models.Threat, 0, size),
		size:      size,
		byType:    map[string]int{},
		byCountry: map[string]int{},
	}
}

func (s *ThreatStore) Add(t models.Threat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// вставка в начало; самый старый выпадает
	if len(s.attacks) < s.size {
		s.attacks = append(s.attacks, models.Threat{})
	}
	copy(s.attacks[1:], s.attacks[:len(s.attacks)-1])
	s.attacks[0] = t

	s.byType[t.Type]++
	s.byCountry[t.Origin]++
	s.byCountry[t.Target]++
}

func (s *ThreatStore) Latest() (models.Threat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.attacks) == 0 {
		return models.Threat{}, false
	}
	return s.attacks[0], true
}

// Recent: до n последних атак, новые первыми
func (s *ThreatStore) Recent(n int) []models.Threat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.attacks) {
		n = len(s.attacks)
	}
	out := make([]models.Threat, n)
	copy(out, s.attacks[:n])
	return out
}

func (s *ThreatStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attacks)
}

// Stats: счётчики по типам (ключи в нижнем регистре) + systems/monitors
func (s *ThreatStore) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(AttackTypes)+2)
	for _, t := range AttackTypes {
		out[strings.ToLower(t)] = s.byType[t]
	}
	out["systems"] = monitoredSystems
	out["monitors"] = monitoringSchedule
	return out
}

func (s *ThreatStore) ByCountry() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.byCountry))
	for k, v := range s.byCountry {
		out[k] = v
	}
	return out
}

// Broadcaster: realtime.Hub
type Broadcaster interface {
	Broadcast(event string, data any) error
}

// ThreatFeed генерирует случайные атаки и рассылает их подписчикам
type ThreatFeed struct {
	Store *ThreatStore
	hub   Broadcaster

	mu       sync.Mutex
	rnd      *rand.Rand
	now      func() time.Time
	minDelay time.Duration
	maxDelay time.Duration
}

func NewThreatFeed(store *ThreatStore, hub Broadcaster) *ThreatFeed {
	return &ThreatFeed{
		Store:    store,
		hub:      hub,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      func() time.Time { return time.Now().UTC() },
		minDelay: 2000 * time.Millisecond,
		maxDelay: 3200 * time.Millisecond,
	}
}

// MakeThreat: случайная атака; цель всегда отличается от источника
func (f *ThreatFeed) MakeThreat() models.Threat {
	f.mu.Lock()
	defer f.mu.Unlock()
	origin := ThreatCountries[f.rnd.Intn(len(ThreatCountries))]
	target := origin
	for target == origin {
		target = ThreatCountries[f.rnd.Intn(len(ThreatCountries))]
	}
	return models.Threat{
		Origin:    origin,
		Target:    target,
		Type:      AttackTypes[f.rnd.Intn(len(AttackTypes))],
		Severity:  Severities[f.rnd.Intn(len(Severities))],
		Timestamp: f.now().Format(time.RFC3339Nano),
	}
}

// Live: последняя атака; если буфер пуст, создаём и сохраняем новую
func (f *ThreatFeed) Live() models.Threat {
	if t, ok := f.Store.Latest(); ok {
		return t
	}
	t := f.MakeThreat()
	f.Store.Add(t)
	return t
}

// Tick: одна итерация генератора, новая атака + три события
func (f *ThreatFeed) Tick() models.Threat {
	t := f.MakeThreat()
	f.Store.Add(t)
	if f.hub != nil {
		f.broadcast(EventThreatNew, t)
		f.broadcast(EventStatsUpdate, f.Store.Stats())
		f.broadcast(EventCountryUpdate, f.Store.ByCountry())
	}
	return t
}

// Run: цикл генератора до отмены ctx
func (f *ThreatFeed) Run(ctx context.Context) {
	log.Printf("[threats][feed] generator started")
	for {
		timer := time.NewTimer(f.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Printf("[threats][feed] generator stopped")
			return
		case <-timer.C:
			f.Tick()
		}
	}
}

func (f *ThreatFeed) nextDelay() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	span := f.maxDelay - f.minDelay
	if span <= 0 {
		return f.minDelay
	}
	return f.minDelay + time.Duration(f.rnd.Int63n(int64(span)+1))
}

func (f *ThreatFeed) broadcast(event string, data any) {
	if err := f.hub.Broadcast(event, data); err != nil {
		log.Printf("[threats][feed] broadcast %s: %v", event, err)
	}
}
