package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"adoption-platform/internal/domain/applications"
)

type applicationRecord struct {
	applications.Application
	seq uint64
}

type applicationsRepo struct {
	mu     sync.RWMutex
	byID   map[string]applicationRecord
	byPair map[string]string // userID+"|"+animalID -> id
	seq    uint64
}

func NewApplicationsRepo() applications.Repository {
	return &applicationsRepo{
		byID:   make(map[string]applicationRecord),
		byPair: make(map[string]string),
	}
}

func pairKey(userID, animalID string) string {
	return userID + "|" + animalID
}

func (r *applicationsRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("application already exists")
	}
	// unicidad (user, animal): es el respaldo contra submissions concurrentes
	if _, exists := r.byPair[pairKey(a.UserID, a.AnimalID)]; exists {
		return applications.ErrDuplicate
	}

	r.seq++
	r.byID[a.ID] = applicationRecord{Application: a, seq: r.seq}
	r.byPair[pairKey(a.UserID, a.AnimalID)] = a.ID
	return nil
}

func (r *applicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return applications.Application{}, applications.ErrNotFound
	}
	return rec.Application, nil
}

func (r *applicationsRepo) Update(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[a.ID]
	if !ok {
		return applications.ErrNotFound
	}
	// solo los campos administrables; el resto es inmutable tras Create
	prev.Status = a.Status
	prev.AdminNotes = a.AdminNotes
	prev.UpdatedAt = a.UpdatedAt
	r.byID[a.ID] = prev
	return nil
}

func (r *applicationsRepo) List(ctx context.Context, f applications.Filter) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]applicationRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		if f.Status != "" && string(rec.Status) != f.Status {
			continue
		}
		matched = append(matched, rec)
	}
	return sortedNewestFirst(matched), nil
}

func (r *applicationsRepo) ListByUser(ctx context.Context, userID string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]applicationRecord, 0)
	for _, rec := range r.byID {
		if rec.UserID == userID {
			matched = append(matched, rec)
		}
	}
	return sortedNewestFirst(matched), nil
}

func (r *applicationsRepo) ExistsForUserAnimal(ctx context.Context, userID, animalID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byPair[pairKey(userID, animalID)]
	return ok, nil
}

func (r *applicationsRepo) Stats(ctx context.Context) (applications.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var st applications.Stats
	for _, rec := range r.byID {
		st.Total++
		switch rec.Status {
		case applications.StatusReceived:
			st.Received++
		case applications.StatusInReview:
			st.InReview++
		case applications.StatusApproved:
			st.Approved++
		case applications.StatusRejected:
			st.Rejected++
		}
	}
	return st, nil
}

func sortedNewestFirst(recs []applicationRecord) []applications.Application {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].seq > recs[j].seq
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	out := make([]applications.Application, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Application)
	}
	return out
}
