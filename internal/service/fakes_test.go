package service

import (
	"context"
	"fmt"
	"sync"

	"fightcard/internal/domain"
)

// fakeStore is an in-memory implementation of all three store interfaces with
// per-call error injection. Methods are mutex-guarded because the result
// reconciler writes the two fighter records concurrently.
type fakeStore struct {
	mu       sync.Mutex
	events   map[string]*domain.Event
	bouts    map[string]*domain.Bout
	fighters map[string]*domain.Fighter

	nextID int

	setResultErr  error
	setRecordErr  map[string]error
	getRecordErr  map[string]error
	setLiveErr    error
	sequencesErr  error
	recordWrites  []string // fighter ids in write order
	seqUpdateRuns int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:       map[string]*domain.Event{},
		bouts:        map[string]*domain.Bout{},
		fighters:     map[string]*domain.Fighter{},
		setRecordErr: map[string]error{},
		getRecordErr: map[string]error{},
	}
}

func (f *fakeStore) addEvent(id string, started, live bool) *domain.Event {
	e := &domain.Event{ID: id, Name: id, IsStarted: started, IsLive: live}
	f.events[id] = e
	return e
}

func (f *fakeStore) addBout(b domain.Bout) *domain.Bout {
	f.bouts[b.ID] = &b
	return f.bouts[b.ID]
}

func (f *fakeStore) addFighter(id, name, record string) *domain.Fighter {
	fighter := &domain.Fighter{ID: id, Name: name, Record: record}
	f.fighters[id] = fighter
	return fighter
}

// EventStore

func (f *fakeStore) Create(ctx context.Context, name string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e := &domain.Event{ID: fmt.Sprintf("event-%d", f.nextID), Name: name}
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeStore) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	copied := *e
	return &copied, nil
}

func (f *fakeStore) SetLiveState(ctx context.Context, eventID string, started, live bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	e.IsStarted = started
	e.IsLive = live
	return nil
}

// BoutStore

func (f *fakeStore) CreateBout(ctx context.Context, bout *domain.Bout) (*domain.Bout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	bout.ID = fmt.Sprintf("bout-%d", f.nextID)
	copied := *bout
	f.bouts[bout.ID] = &copied
	return bout, nil
}

func (f *fakeStore) GetBout(ctx context.Context, boutID string) (*domain.Bout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bouts[boutID]
	if !ok {
		return nil, fmt.Errorf("bout %s: %w", boutID, domain.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) ListByEvent(ctx context.Context, eventID string) ([]domain.Bout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Bout
	for _, b := range f.bouts {
		if b.EventID == eventID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListCompletedForFighter(ctx context.Context, fighterID string) ([]domain.Bout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Bout
	for _, b := range f.bouts {
		if b.WinnerSide == domain.WinnerNone {
			continue
		}
		if (b.RedFighterID != nil && *b.RedFighterID == fighterID) ||
			(b.BlueFighterID != nil && *b.BlueFighterID == fighterID) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateSequences(ctx context.Context, updates []domain.SequenceUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sequencesErr != nil {
		return f.sequencesErr
	}
	f.seqUpdateRuns++
	for _, u := range updates {
		if b, ok := f.bouts[u.BoutID]; ok {
			seq := u.SequenceNumber
			b.SequenceNumber = &seq
		}
	}
	return nil
}

func (f *fakeStore) SetLive(ctx context.Context, eventID, boutID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setLiveErr != nil {
		return f.setLiveErr
	}
	target, ok := f.bouts[boutID]
	if !ok || target.EventID != eventID {
		return fmt.Errorf("bout %s: %w", boutID, domain.ErrNotFound)
	}
	for _, b := range f.bouts {
		if b.EventID == eventID {
			b.IsLive = false
		}
	}
	target.IsLive = true
	return nil
}

func (f *fakeStore) ClearLive(ctx context.Context, boutID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bouts[boutID]; ok {
		b.IsLive = false
	}
	return nil
}

func (f *fakeStore) ClearLiveForEvent(ctx context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bouts {
		if b.EventID == eventID {
			b.IsLive = false
		}
	}
	return nil
}

func (f *fakeStore) SetResult(ctx context.Context, boutID string, result domain.BoutResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setResultErr != nil {
		return f.setResultErr
	}
	b, ok := f.bouts[boutID]
	if !ok {
		return fmt.Errorf("bout %s: %w", boutID, domain.ErrNotFound)
	}
	b.WinnerSide = result.Winner
	b.Method = result.Method
	b.Round = result.Round
	b.Time = result.Time
	return nil
}

func (f *fakeStore) Reorder(ctx context.Context, boutID string, orderIndex int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bouts[boutID]
	if !ok {
		return fmt.Errorf("bout %s: %w", boutID, domain.ErrNotFound)
	}
	b.OrderIndex = orderIndex
	return nil
}

// FighterStore

func (f *fakeStore) CreateFighter(ctx context.Context, name, record string) (*domain.Fighter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	fighter := &domain.Fighter{ID: fmt.Sprintf("fighter-%d", f.nextID), Name: name, Record: record}
	f.fighters[fighter.ID] = fighter
	return fighter, nil
}

func (f *fakeStore) GetFighter(ctx context.Context, fighterID string) (*domain.Fighter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fighter, ok := f.fighters[fighterID]
	if !ok {
		return nil, fmt.Errorf("fighter %s: %w", fighterID, domain.ErrNotFound)
	}
	copied := *fighter
	return &copied, nil
}

func (f *fakeStore) GetRecord(ctx context.Context, fighterID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getRecordErr[fighterID]; err != nil {
		return "", err
	}
	fighter, ok := f.fighters[fighterID]
	if !ok {
		return "", fmt.Errorf("fighter %s: %w", fighterID, domain.ErrNotFound)
	}
	return fighter.Record, nil
}

func (f *fakeStore) SetRecord(ctx context.Context, fighterID, record string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.setRecordErr[fighterID]; err != nil {
		return err
	}
	fighter, ok := f.fighters[fighterID]
	if !ok {
		return fmt.Errorf("fighter %s: %w", fighterID, domain.ErrNotFound)
	}
	fighter.Record = record
	f.recordWrites = append(f.recordWrites, fighterID)
	return nil
}

// boutStoreAdapter renames the fake's bout/fighter constructors onto the
// interface method names without colliding with EventStore.Create/Get.
type boutStoreAdapter struct{ *fakeStore }

func (a boutStoreAdapter) Create(ctx context.Context, bout *domain.Bout) (*domain.Bout, error) {
	return a.CreateBout(ctx, bout)
}

func (a boutStoreAdapter) Get(ctx context.Context, boutID string) (*domain.Bout, error) {
	return a.GetBout(ctx, boutID)
}

type fighterStoreAdapter struct{ *fakeStore }

func (a fighterStoreAdapter) Create(ctx context.Context, name, record string) (*domain.Fighter, error) {
	return a.CreateFighter(ctx, name, record)
}

func (a fighterStoreAdapter) Get(ctx context.Context, fighterID string) (*domain.Fighter, error) {
	return a.GetFighter(ctx, fighterID)
}

type resultNote struct {
	eventID, boutID string
	winner          domain.WinnerSide
	winnerName      string
	method          string
	round           int
	time            string
}

// fakeNotifier records everything it is asked to announce.
type fakeNotifier struct {
	mu          sync.Mutex
	eventLive   []string
	boutStarted []string
	results     []resultNote
}

func (n *fakeNotifier) NotifyEventLive(_ context.Context, eventID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventLive = append(n.eventLive, eventID)
}

func (n *fakeNotifier) NotifyBoutStarted(_ context.Context, eventID, boutID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.boutStarted = append(n.boutStarted, boutID)
}

func (n *fakeNotifier) NotifyBoutResult(_ context.Context, eventID, boutID string, winner domain.WinnerSide, winnerName, method string, round int, boutTime string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results = append(n.results, resultNote{
		eventID: eventID, boutID: boutID, winner: winner,
		winnerName: winnerName, method: method, round: round, time: boutTime,
	})
}

func seqp(n int) *int       { return &n }
func strp(s string) *string { return &s }
