package postgres

import (
	"context"
	"database/sql"

	"adoption-platform/internal/domain/applications"
)

const applicationColumns = `
	id, user_id, animal_id, nombre, email, telefono, direccion, ocupacion,
	tipo_vivienda, espacio_exterior, experiencia_mascotas, motivo_adopcion,
	status, notas_admin, created_at, updated_at`

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		a.ID,
		a.UserID,
		a.AnimalID,
		a.Name,
		a.Email,
		a.Phone,
		a.Address,
		a.Occupation,
		a.Housing,
		a.OutdoorSpace,
		a.PetExperience,
		a.Reason,
		a.Status,
		a.AdminNotes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if violatesUnique(err, "applications_user_animal_key") {
			return applications.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE id = $1
	`, id)

	a, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return applications.Application{}, applications.ErrNotFound
	}
	return a, err
}

func (r *ApplicationsRepo) Update(ctx context.Context, a applications.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET status = $2, notas_admin = $3, updated_at = $4
		WHERE id = $1
	`,
		a.ID,
		a.Status,
		a.AdminNotes,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return applications.ErrNotFound
	}
	return nil
}

func (r *ApplicationsRepo) List(ctx context.Context, f applications.Filter) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationsRepo) ListByUser(ctx context.Context, userID string) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationsRepo) ExistsForUserAnimal(ctx context.Context, userID, animalID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM applications WHERE user_id = $1 AND animal_id = $2
		)
	`, userID, animalID).Scan(&exists)
	return exists, err
}

func (r *ApplicationsRepo) Stats(ctx context.Context) (applications.Stats, error) {
	var st applications.Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'recibida'),
			count(*) FILTER (WHERE status = 'en revisión'),
			count(*) FILTER (WHERE status = 'aprobada'),
			count(*) FILTER (WHERE status = 'rechazada')
		FROM applications
	`).Scan(&st.Total, &st.Received, &st.InReview, &st.Approved, &st.Rejected)
	if err != nil {
		return applications.Stats{}, err
	}
	return st, nil
}

func collectApplications(rows *sql.Rows) ([]applications.Application, error) {
	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(scan func(dest ...any) error) (applications.Application, error) {
	var a applications.Application
	if err := scan(
		&a.ID,
		&a.UserID,
		&a.AnimalID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.Address,
		&a.Occupation,
		&a.Housing,
		&a.OutdoorSpace,
		&a.PetExperience,
		&a.Reason,
		&a.Status,
		&a.AdminNotes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return applications.Application{}, err
	}
	return a, nil
}
