package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"adoption-platform/internal/domain/animals"
)

type animalRecord struct {
	animals.Animal
	seq uint64
}

type animalsRepo struct {
	mu     sync.RWMutex
	byID   map[string]animalRecord
	byChip map[string]string // chip -> id
	seq    uint64
}

func NewAnimalsRepo() animals.Repository {
	return &animalsRepo{
		byID:   make(map[string]animalRecord),
		byChip: make(map[string]string),
	}
}

func (r *animalsRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	if a.Chip != "" {
		if _, exists := r.byChip[a.Chip]; exists {
			return animals.ErrChipConflict
		}
	}

	r.seq++
	r.byID[a.ID] = animalRecord{Animal: a, seq: r.seq}
	if a.Chip != "" {
		r.byChip[a.Chip] = a.ID
	}
	return nil
}

func (r *animalsRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[a.ID]
	if !exists {
		return animals.ErrNotFound
	}
	if a.Chip != "" {
		if owner, taken := r.byChip[a.Chip]; taken && owner != a.ID {
			return animals.ErrChipConflict
		}
	}

	if prev.Chip != "" && prev.Chip != a.Chip {
		delete(r.byChip, prev.Chip)
	}
	if a.Chip != "" {
		r.byChip[a.Chip] = a.ID
	}
	r.byID[a.ID] = animalRecord{Animal: a, seq: prev.seq}
	return nil
}

func (r *animalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return rec.Animal, nil
}

func (r *animalsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return animals.ErrNotFound
	}
	if rec.Chip != "" {
		delete(r.byChip, rec.Chip)
	}
	delete(r.byID, id)
	return nil
}

func (r *animalsRepo) GetByChip(ctx context.Context, chip string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byChip[chip]
	if !ok {
		return animals.Animal{}, animals.ErrChipNotFound
	}
	return r.byID[id].Animal, nil
}

func (r *animalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	terms := tokenize(f.Search)

	matched := make([]animalRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		if f.Species != "" && string(rec.Species) != f.Species {
			continue
		}
		if f.State != "" && string(rec.State) != f.State {
			continue
		}
		if len(terms) > 0 && !matchesTerms(rec.Animal, terms) {
			continue
		}
		matched = append(matched, rec)
	}

	// más recientes primero; seq desempata timestamps iguales
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].seq > matched[j].seq
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	out := make([]animals.Animal, 0, len(matched))
	for _, rec := range matched {
		out = append(out, rec.Animal)
	}
	return out, nil
}

func (r *animalsRepo) Stats(ctx context.Context) (animals.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := animals.Stats{BySpecies: make([]animals.SpeciesCount, 0)}
	bySpecies := map[animals.Species]int{}

	for _, rec := range r.byID {
		st.Total++
		switch rec.State {
		case animals.StateReady:
			st.Ready++
		case animals.StateRecovering:
			st.Recovering++
		case animals.StateAdopted:
			st.Adopted++
		}
		bySpecies[rec.Species]++
	}

	for _, sp := range []animals.Species{animals.SpeciesDog, animals.SpeciesCat, animals.SpeciesOther} {
		if n, ok := bySpecies[sp]; ok {
			st.BySpecies = append(st.BySpecies, animals.SpeciesCount{Species: sp, Count: n})
		}
	}
	return st, nil
}

// matchesTerms emula el text search por palabra completa sobre nombre y
// descripción: cada término del query debe aparecer como token.
func matchesTerms(a animals.Animal, terms []string) bool {
	words := map[string]struct{}{}
	for _, w := range tokenize(a.Name) {
		words[w] = struct{}{}
	}
	for _, w := range tokenize(a.Description) {
		words[w] = struct{}{}
	}

	for _, t := range terms {
		if _, ok := words[t]; !ok {
			return false
		}
	}
	return true
}

// ñ también se pliega a n: "carinoso" debe encontrar "cariñoso".
var accents = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

func tokenize(s string) []string {
	s = accents.Replace(strings.ToLower(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}
