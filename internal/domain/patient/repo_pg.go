package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, user_id, address_id, date_of_birth, gender, blood_group,
	height_cm, weight_kg, status, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.UserID, &p.AddressID, &p.DateOfBirth, &p.Gender, &p.BloodGroup,
		&p.HeightCM, &p.WeightKG, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = StatusActive
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, user_id, address_id, date_of_birth, gender, blood_group,
			height_cm, weight_kg, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.UserID, p.AddressID, p.DateOfBirth, p.Gender, p.BloodGroup,
		p.HeightCM, p.WeightKG, p.Status)
	if err != nil {
		return apperr.Integration("patients", err)
	}
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("patient", id.String())
		}
		return nil, apperr.Integration("patients", err)
	}
	return p, nil
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET address_id=$2, date_of_birth=$3, gender=$4, blood_group=$5,
			height_cm=$6, weight_kg=$7, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.AddressID, p.DateOfBirth, p.Gender, p.BloodGroup, p.HeightCM, p.WeightKG)
	if err != nil {
		return apperr.Integration("patients", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient", p.ID.String())
	}
	return nil
}

func (r *patientRepoPG) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE patients SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return apperr.Integration("patients", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient", id.String())
	}
	return nil
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE status <> 'deleted'`).Scan(&total); err != nil {
		return nil, 0, apperr.Integration("patients", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+patientCols+` FROM patients
		WHERE status <> 'deleted'
		ORDER BY created_at
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, apperr.Integration("patients", err)
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, apperr.Integration("patients", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Integration("patients", err)
	}
	return items, total, nil
}

// =========== Allergy Repository ===========

type allergyRepoPG struct{ pool *pgxpool.Pool }

func NewAllergyRepoPG(pool *pgxpool.Pool) AllergyRepository {
	return &allergyRepoPG{pool: pool}
}

func (r *allergyRepoPG) Create(ctx context.Context, a *Allergy) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO allergies (id, patient_id, allergen, reaction, recorded_at)
		VALUES ($1,$2,$3,$4,NOW())`,
		a.ID, a.PatientID, a.Allergen, a.Reaction)
	if err != nil {
		return apperr.Integration("allergies", err)
	}
	return nil
}

func (r *allergyRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Allergy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, allergen, reaction, recorded_at
		FROM allergies WHERE patient_id = $1 ORDER BY recorded_at`, patientID)
	if err != nil {
		return nil, apperr.Integration("allergies", err)
	}
	defer rows.Close()

	items := []*Allergy{}
	for rows.Next() {
		var a Allergy
		if err := rows.Scan(&a.ID, &a.PatientID, &a.Allergen, &a.Reaction, &a.RecordedAt); err != nil {
			return nil, apperr.Integration("allergies", err)
		}
		items = append(items, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Integration("allergies", err)
	}
	return items, nil
}

func (r *allergyRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM allergies WHERE id = $1`, id)
	if err != nil {
		return apperr.Integration("allergies", err)
	}
	return nil
}

// =========== Medication Repository ===========

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medications (id, patient_id, name, dosage, start_date, end_date)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.PatientID, m.Name, m.Dosage, m.StartDate, m.EndDate)
	if err != nil {
		return apperr.Integration("medications", err)
	}
	return nil
}

func (r *medicationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, name, dosage, start_date, end_date, created_at
		FROM medications WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, apperr.Integration("medications", err)
	}
	defer rows.Close()

	items := []*Medication{}
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dosage, &m.StartDate, &m.EndDate, &m.CreatedAt); err != nil {
			return nil, apperr.Integration("medications", err)
		}
		items = append(items, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Integration("medications", err)
	}
	return items, nil
}

func (r *medicationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return apperr.Integration("medications", err)
	}
	return nil
}

// =========== Medical History Repository ===========

type medicalHistoryRepoPG struct{ pool *pgxpool.Pool }

func NewMedicalHistoryRepoPG(pool *pgxpool.Pool) MedicalHistoryRepository {
	return &medicalHistoryRepoPG{pool: pool}
}

func (r *medicalHistoryRepoPG) Create(ctx context.Context, e *MedicalHistoryEntry) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medical_history (id, patient_id, condition, notes, recorded_at)
		VALUES ($1,$2,$3,$4,NOW())`,
		e.ID, e.PatientID, e.Condition, e.Notes)
	if err != nil {
		return apperr.Integration("medical_history", err)
	}
	return nil
}

func (r *medicalHistoryRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MedicalHistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, condition, notes, recorded_at
		FROM medical_history WHERE patient_id = $1 ORDER BY recorded_at`, patientID)
	if err != nil {
		return nil, apperr.Integration("medical_history", err)
	}
	defer rows.Close()

	items := []*MedicalHistoryEntry{}
	for rows.Next() {
		var e MedicalHistoryEntry
		if err := rows.Scan(&e.ID, &e.PatientID, &e.Condition, &e.Notes, &e.RecordedAt); err != nil {
			return nil, apperr.Integration("medical_history", err)
		}
		items = append(items, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Integration("medical_history", err)
	}
	return items, nil
}

func (r *medicalHistoryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM medical_history WHERE id = $1`, id)
	if err != nil {
		return apperr.Integration("medical_history", err)
	}
	return nil
}

// =========== Emergency Contact Repository ===========

type emergencyContactRepoPG struct{ pool *pgxpool.Pool }

func NewEmergencyContactRepoPG(pool *pgxpool.Pool) EmergencyContactRepository {
	return &emergencyContactRepoPG{pool: pool}
}

func (r *emergencyContactRepoPG) Create(ctx context.Context, ec *EmergencyContact) error {
	ec.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO emergency_contacts (id, patient_id, name, relationship, phone)
		VALUES ($1,$2,$3,$4,$5)`,
		ec.ID, ec.PatientID, ec.Name, ec.Relationship, ec.Phone)
	if err != nil {
		return apperr.Integration("emergency_contacts", err)
	}
	return nil
}

func (r *emergencyContactRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*EmergencyContact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, name, relationship, phone, created_at
		FROM emergency_contacts WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, apperr.Integration("emergency_contacts", err)
	}
	defer rows.Close()

	items := []*EmergencyContact{}
	for rows.Next() {
		var ec EmergencyContact
		if err := rows.Scan(&ec.ID, &ec.PatientID, &ec.Name, &ec.Relationship, &ec.Phone, &ec.CreatedAt); err != nil {
			return nil, apperr.Integration("emergency_contacts", err)
		}
		items = append(items, &ec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Integration("emergency_contacts", err)
	}
	return items, nil
}

func (r *emergencyContactRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id)
	if err != nil {
		return apperr.Integration("emergency_contacts", err)
	}
	return nil
}

// =========== Insurance Policy Repository ===========

type insurancePolicyRepoPG struct{ pool *pgxpool.Pool }

func NewInsurancePolicyRepoPG(pool *pgxpool.Pool) InsurancePolicyRepository {
	return &insurancePolicyRepoPG{pool: pool}
}

func (r *insurancePolicyRepoPG) Create(ctx context.Context, ip *InsurancePolicy) error {
	ip.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO insurance_policies (id, patient_id, provider, policy_number, coverage_details)
		VALUES ($1,$2,$3,$4,$5)`,
		ip.ID, ip.PatientID, ip.Provider, ip.PolicyNumber, ip.CoverageDetails)
	if err != nil {
		return apperr.Integration("insurance_policies", err)
	}
	return nil
}

func (r *insurancePolicyRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*InsurancePolicy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, provider, policy_number, coverage_details, created_at
		FROM insurance_policies WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, apperr.Integration("insurance_policies", err)
	}
	defer rows.Close()

	items := []*InsurancePolicy{}
	for rows.Next() {
		var ip InsurancePolicy
		if err := rows.Scan(&ip.ID, &ip.PatientID, &ip.Provider, &ip.PolicyNumber, &ip.CoverageDetails, &ip.CreatedAt); err != nil {
			return nil, apperr.Integration("insurance_policies", err)
		}
		items = append(items, &ip)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Integration("insurance_policies", err)
	}
	return items, nil
}

func (r *insurancePolicyRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM insurance_policies WHERE id = $1`, id)
	if err != nil {
		return apperr.Integration("insurance_policies", err)
	}
	return nil
}

// =========== Appointment Link Repository ===========

type appointmentLinkRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentLinkRepoPG(pool *pgxpool.Pool) AppointmentLinkRepository {
	return &appointmentLinkRepoPG{pool: pool}
}

func (r *appointmentLinkRepoPG) Create(ctx context.Context, al *AppointmentLink) error {
	al.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment_links (id, patient_id, appointment_id)
		VALUES ($1,$2,$3)`,
		al.ID, al.PatientID, al.AppointmentID)
	if err != nil {
		return apperr.Integration("appointment_links", err)
	}
	return nil
}

func (r *appointmentLinkRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentLink, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, appointment_id, created_at
		FROM appointment_links WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, apperr.Integration("appointment_links", err)
	}
	defer rows.Close()

	items := []*AppointmentLink{}
	for rows.Next() {
		var al AppointmentLink
		if err := rows.Scan(&al.ID, &al.PatientID, &al.AppointmentID, &al.CreatedAt); err != nil {
			return nil, apperr.Integration("appointment_links", err)
		}
		items = append(items, &al)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Integration("appointment_links", err)
	}
	return items, nil
}

func (r *appointmentLinkRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointment_links WHERE id = $1`, id)
	if err != nil {
		return apperr.Integration("appointment_links", err)
	}
	return nil
}
