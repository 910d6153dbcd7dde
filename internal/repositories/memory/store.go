// Package memory is an in-process implementation of the repository ports.
// It keeps rows in their stored form (dates as raw text) so that it behaves
// like the Postgres driver when a stored date is out of range.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/kennethjason07/school_management_app/internal/apperrors"
	"github.com/kennethjason07/school_management_app/internal/core/domain"
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
	"github.com/kennethjason07/school_management_app/internal/models"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
	"github.com/kennethjason07/school_management_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type pairKey struct {
	studentID string
	feeID     string
}

// Store holds every table behind one lock. The lock is the serialization
// point for ApplyDelta, the way the row lock is for Postgres.
type Store struct {
	mu          sync.RWMutex
	classes     map[string]models.Class
	students    map[string]models.Student
	fees        map[string]models.FeeStructure
	studentFees map[string]models.StudentFee
	byPair      map[pairKey]string
}

func NewStore() *Store {
	return &Store{
		classes:     make(map[string]models.Class),
		students:    make(map[string]models.Student),
		fees:        make(map[string]models.FeeStructure),
		studentFees: make(map[string]models.StudentFee),
		byPair:      make(map[pairKey]string),
	}
}

var (
	_ portsrepo.FeeStructureRepositoryFacade = (*Store)(nil)
	_ portsrepo.StudentFeeRepositoryFacade   = (*Store)(nil)
	_ portsrepo.SchoolReader                 = (*Store)(nil)
	_ portsrepo.DateRepairRepository         = (*Store)(nil)
)

// RepositoryProvider exposes the store through every repository port.
func (s *Store) RepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FeeStructureRepo: s,
		StudentFeeRepo:   s,
		SchoolRepo:       s,
		DateRepairRepo:   s,
	}
}

// PutClass inserts or replaces a class.
func (s *Store) PutClass(c domain.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[c.ClassID] = models.Class{ClassID: c.ClassID, Name: c.Name, Section: c.Section}
}

// PutStudent inserts or replaces a student.
func (s *Store) PutStudent(st domain.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[st.StudentID] = models.Student{
		StudentID:   st.StudentID,
		ClassID:     st.ClassID,
		Name:        st.Name,
		AdmissionNo: st.AdmissionNo,
	}
}

// PutRawFeeStructure stores a row as is, bypassing validation. Used to load
// rows that already exist, including corrupt ones.
func (s *Store) PutRawFeeStructure(m models.FeeStructure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fees[m.FeeID] = m
}

// PutRawStudentFee stores a ledger row as is.
func (s *Store) PutRawStudentFee(m models.StudentFee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studentFees[m.StudentFeeID] = m
	s.byPair[pairKey{m.StudentID, m.FeeID}] = m.StudentFeeID
}

// RawDueDate returns the stored due date text of a fee item.
func (s *Store) RawDueDate(feeID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.fees[feeID]
	return m.DueDate, ok
}

// RawPaymentDate returns the stored payment date text of a ledger row.
func (s *Store) RawPaymentDate(studentFeeID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.studentFees[studentFeeID]
	if !ok || m.PaymentDate == nil {
		return "", false
	}
	return *m.PaymentDate, true
}

// --- classes and students ---

func (s *Store) FindClassByID(ctx context.Context, classID string) (*domain.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.classes[classID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("class %s not found", classID))
	}
	c := mapping.ToDomainClass(m)
	return &c, nil
}

func (s *Store) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.students[studentID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("student %s not found", studentID))
	}
	st := mapping.ToDomainStudent(m)
	return &st, nil
}

func (s *Store) ListStudentsByClass(ctx context.Context, classID string) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ms []models.Student
	for _, m := range s.students {
		if m.ClassID == classID {
			ms = append(ms, m)
		}
	}
	slices.SortFunc(ms, func(a, b models.Student) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.StudentID, b.StudentID))
	})
	return mapping.ToDomainStudentSlice(ms), nil
}

// --- fee structures ---

func (s *Store) SaveFeeStructure(ctx context.Context, fee domain.FeeStructure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classes[fee.ClassID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("class %s not found", fee.ClassID))
	}
	if _, ok := s.fees[fee.FeeID]; ok {
		return apperrors.NewAppError(apperrors.ErrDuplicate, fmt.Sprintf("fee structure %s already exists", fee.FeeID), nil)
	}
	s.fees[fee.FeeID] = mapping.ToModelFeeStructure(fee)
	return nil
}

func (s *Store) UpdateFeeStructure(ctx context.Context, fee domain.FeeStructure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.fees[fee.FeeID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("fee structure %s not found", fee.FeeID))
	}
	m := mapping.ToModelFeeStructure(fee)
	m.ClassID = existing.ClassID
	m.CreatedAt = existing.CreatedAt
	m.CreatedBy = existing.CreatedBy
	s.fees[fee.FeeID] = m
	return nil
}

func (s *Store) DeleteFeeStructure(ctx context.Context, feeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fees[feeID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("fee structure %s not found", feeID))
	}
	for _, r := range s.studentFees {
		if r.FeeID == feeID {
			return apperrors.NewBlockedError(fmt.Sprintf("fee structure %s is referenced by student fee records", feeID))
		}
	}
	delete(s.fees, feeID)
	return nil
}

func (s *Store) FindFeeStructureByID(ctx context.Context, feeID string) (*domain.FeeStructure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.fees[feeID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("fee structure %s not found", feeID))
	}
	fee, err := mapping.ToDomainFeeStructure(m)
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

func (s *Store) ListFeeStructuresByClass(ctx context.Context, classID string) ([]domain.FeeStructure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ms []models.FeeStructure
	for _, m := range s.fees {
		if m.ClassID == classID {
			ms = append(ms, m)
		}
	}
	return sortedFees(ms)
}

func (s *Store) ListFeeStructures(ctx context.Context) ([]domain.FeeStructure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ms := make([]models.FeeStructure, 0, len(s.fees))
	for _, m := range s.fees {
		ms = append(ms, m)
	}
	return sortedFees(ms)
}

// sortedFees orders by class, due date, fee type. Like the date cast in SQL,
// ordering fails when any due date is not a real day.
func sortedFees(ms []models.FeeStructure) ([]domain.FeeStructure, error) {
	fees, err := mapping.ToDomainFeeStructureSlice(ms)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(fees, func(a, b domain.FeeStructure) int {
		return cmp.Or(
			cmp.Compare(a.ClassID, b.ClassID),
			a.DueDate.Compare(b.DueDate),
			cmp.Compare(a.FeeType, b.FeeType),
			cmp.Compare(a.FeeID, b.FeeID),
		)
	})
	return fees, nil
}

// --- student fees ---

// ApplyDelta performs the increment and the status derivation under the
// store lock.
func (s *Store) ApplyDelta(ctx context.Context, delta domain.PaymentDelta) (*domain.StudentFee, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrUnknownOutcome, "payment write interrupted", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[delta.StudentID]; !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("student %s not found", delta.StudentID))
	}
	if _, ok := s.fees[delta.FeeID]; !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("fee structure %s not found", delta.FeeID))
	}

	key := pairKey{delta.StudentID, delta.FeeID}
	row, exists := s.studentFees[s.byPair[key]]
	if !exists {
		row = models.StudentFee{
			StudentFeeID: delta.StudentFeeID,
			StudentID:    delta.StudentID,
			FeeID:        delta.FeeID,
			AmountPaid:   decimal.Zero,
			AuditFields: models.AuditFields{
				CreatedAt: delta.At,
				CreatedBy: delta.UserID,
			},
		}
	}

	paymentDate := calendar.Format(delta.PaymentDate)
	row.AmountPaid = row.AmountPaid.Add(delta.Amount)
	row.PaymentDate = &paymentDate
	row.Status = string(domain.DeriveStatus(row.AmountPaid, delta.OwedAmount))
	row.LastUpdatedAt = delta.At
	row.LastUpdatedBy = delta.UserID

	s.studentFees[row.StudentFeeID] = row
	s.byPair[key] = row.StudentFeeID

	rec, err := mapping.ToDomainStudentFee(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) FindStudentFee(ctx context.Context, studentID, feeID string) (*domain.StudentFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.studentFees[s.byPair[pairKey{studentID, feeID}]]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no payments recorded for student %s fee %s", studentID, feeID))
	}
	rec, err := mapping.ToDomainStudentFee(m)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) ListStudentFeesByStudent(ctx context.Context, studentID string) ([]domain.StudentFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterStudentFees(func(m models.StudentFee) bool { return m.StudentID == studentID })
}

func (s *Store) ListStudentFeesByClass(ctx context.Context, classID string) ([]domain.StudentFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterStudentFees(func(m models.StudentFee) bool {
		st, ok := s.students[m.StudentID]
		return ok && st.ClassID == classID
	})
}

func (s *Store) ListStudentFees(ctx context.Context) ([]domain.StudentFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterStudentFees(func(models.StudentFee) bool { return true })
}

func (s *Store) CountStudentFeesByFee(ctx context.Context, feeID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, m := range s.studentFees {
		if m.FeeID == feeID {
			count++
		}
	}
	return count, nil
}

// filterStudentFees must be called with the lock held.
func (s *Store) filterStudentFees(keep func(models.StudentFee) bool) ([]domain.StudentFee, error) {
	var ms []models.StudentFee
	for _, m := range s.studentFees {
		if keep(m) {
			ms = append(ms, m)
		}
	}
	records, err := mapping.ToDomainStudentFeeSlice(ms)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(records, func(a, b domain.StudentFee) int {
		return cmp.Or(
			cmp.Compare(a.StudentID, b.StudentID),
			comparePaymentDates(a.PaymentDate, b.PaymentDate),
			cmp.Compare(a.FeeID, b.FeeID),
		)
	})
	return records, nil
}

// comparePaymentDates sorts missing dates last.
func comparePaymentDates(a, b *calendar.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}

// --- raw date access ---

func (s *Store) ListRawDates(ctx context.Context) ([]domain.RawDateValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([]domain.RawDateValue, 0, len(s.fees)+len(s.studentFees))
	for _, m := range s.fees {
		values = append(values, domain.RawDateValue{
			Table: domain.TableFeeStructures, Field: domain.FieldDueDate, RecordID: m.FeeID, Value: m.DueDate,
		})
	}
	for _, m := range s.studentFees {
		if m.PaymentDate == nil {
			continue
		}
		values = append(values, domain.RawDateValue{
			Table: domain.TableStudentFees, Field: domain.FieldPaymentDate, RecordID: m.StudentFeeID, Value: *m.PaymentDate,
		})
	}
	slices.SortFunc(values, func(a, b domain.RawDateValue) int {
		return cmp.Or(cmp.Compare(a.Table, b.Table), cmp.Compare(a.RecordID, b.RecordID))
	})
	return values, nil
}

func (s *Store) RewriteDate(ctx context.Context, value domain.RawDateValue, repaired string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case value.Table == domain.TableFeeStructures && value.Field == domain.FieldDueDate:
		m, ok := s.fees[value.RecordID]
		if !ok || m.DueDate != value.Value {
			return false, nil
		}
		m.DueDate = repaired
		s.fees[value.RecordID] = m
		return true, nil
	case value.Table == domain.TableStudentFees && value.Field == domain.FieldPaymentDate:
		m, ok := s.studentFees[value.RecordID]
		if !ok || m.PaymentDate == nil || *m.PaymentDate != value.Value {
			return false, nil
		}
		m.PaymentDate = &repaired
		s.studentFees[value.RecordID] = m
		return true, nil
	default:
		return false, apperrors.NewValidationError(fmt.Sprintf("%s.%s is not a repairable date column", value.Table, value.Field))
	}
}
