package postgres

import (
	"context"
	"database/sql"
	"strings"

	"adoption-platform/internal/domain/animals"
)

const animalColumns = `
	id, nombre, especie, raza, edad, sexo, tamano, color,
	descripcion, estado, foto_url, chip,
	esterilizado, vacunado, desparasitado, necesidades_especiales,
	created_at, updated_at`

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		a.Age,
		a.Sex,
		a.Size,
		a.Color,
		a.Description,
		a.State,
		a.PhotoURL,
		toNullString(a.Chip),
		a.Sterilized,
		a.Vaccinated,
		a.Dewormed,
		a.SpecialNeeds,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if violatesUnique(err, "animals_chip_key") {
			return animals.ErrChipConflict
		}
		return err
	}
	return nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			nombre = $2,
			especie = $3,
			raza = $4,
			edad = $5,
			sexo = $6,
			tamano = $7,
			color = $8,
			descripcion = $9,
			estado = $10,
			foto_url = $11,
			chip = $12,
			esterilizado = $13,
			vacunado = $14,
			desparasitado = $15,
			necesidades_especiales = $16,
			updated_at = $17
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		a.Age,
		a.Sex,
		a.Size,
		a.Color,
		a.Description,
		a.State,
		a.PhotoURL,
		toNullString(a.Chip),
		a.Sterilized,
		a.Vaccinated,
		a.Dewormed,
		a.SpecialNeeds,
		a.UpdatedAt,
	)
	if err != nil {
		if violatesUnique(err, "animals_chip_key") {
			return animals.ErrChipConflict
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row.Scan)
	if err == sql.ErrNoRows {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, err
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByChip(ctx context.Context, chip string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE chip = $1
	`, chip)

	a, err := scanAnimal(row.Scan)
	if err == sql.ErrNoRows {
		return animals.Animal{}, animals.ErrChipNotFound
	}
	return a, err
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE ($1 = '' OR especie = $1)
		  AND ($2 = '' OR estado = $2)
		  AND ($3 = '' OR to_tsvector('spanish', nombre || ' ' || descripcion)
		                  @@ plainto_tsquery('spanish', $3))
		ORDER BY created_at DESC
	`, f.Species, f.State, f.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Stats(ctx context.Context) (animals.Stats, error) {
	var st animals.Stats

	row := r.db.QueryRowContext(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE estado = 'listo'),
			count(*) FILTER (WHERE estado = 'en recuperación'),
			count(*) FILTER (WHERE estado = 'adoptado')
		FROM animals
	`)
	if err := row.Scan(&st.Total, &st.Ready, &st.Recovering, &st.Adopted); err != nil {
		return animals.Stats{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT especie, count(*)
		FROM animals
		GROUP BY especie
		ORDER BY array_position(ARRAY['perro','gato','otro'], especie)
	`)
	if err != nil {
		return animals.Stats{}, err
	}
	defer rows.Close()

	st.BySpecies = make([]animals.SpeciesCount, 0)
	for rows.Next() {
		var sc animals.SpeciesCount
		if err := rows.Scan(&sc.Species, &sc.Count); err != nil {
			return animals.Stats{}, err
		}
		st.BySpecies = append(st.BySpecies, sc)
	}
	return st, rows.Err()
}

func scanAnimal(scan func(dest ...any) error) (animals.Animal, error) {
	var a animals.Animal
	var chip sql.NullString
	if err := scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&a.Age,
		&a.Sex,
		&a.Size,
		&a.Color,
		&a.Description,
		&a.State,
		&a.PhotoURL,
		&chip,
		&a.Sterilized,
		&a.Vaccinated,
		&a.Dewormed,
		&a.SpecialNeeds,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}
	if chip.Valid {
		a.Chip = chip.String
	}
	return a, nil
}

// chip vacío se guarda como NULL para que el índice único solo
// aplique cuando hay chip.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
