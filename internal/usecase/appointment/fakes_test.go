package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

// fakeRepo guarda tudo em memória e replica as regras das queries reais
// (conflito por status bloqueante, janela do dia por cliente).
type fakeRepo struct {
	clinics  map[uint]*models.Clinic
	clients  map[uint]*models.Client
	services map[uint]*models.Service
	packages map[uint]*models.Package

	appointments []*models.Appointment
	blocks       []*models.CalendarBlock

	nextID uint

	// Erros injetáveis para simular escritas que falham no meio do fluxo.
	failCreate error
	failUpdate error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinics:  map[uint]*models.Clinic{},
		clients:  map[uint]*models.Client{},
		services: map[uint]*models.Service{},
		packages: map[uint]*models.Package{},
		nextID:   1,
	}
}

func (f *fakeRepo) seedClinic(id uint, tz string) {
	f.clinics[id] = &models.Clinic{ID: id, Name: "Clínica Teste", Timezone: tz}
}

func (f *fakeRepo) seedClient(id, clinicID uint) {
	f.clients[id] = &models.Client{ID: id, ClinicID: clinicID, Name: "Cliente"}
}

func (f *fakeRepo) seedService(id, clinicID uint, durationMin int) {
	f.services[id] = &models.Service{ID: id, ClinicID: clinicID, Name: "Sessão", DurationMin: durationMin, Price: 100}
}

func (f *fakeRepo) seedPackage(id, clinicID, clientID uint, total, remaining int) {
	status := "active"
	if remaining == 0 {
		status = "completed"
	}
	f.packages[id] = &models.Package{
		ID: id, ClinicID: clinicID, ClientID: clientID,
		TotalSessions: total, RemainingSessions: remaining, Status: status,
	}
}

// Atomically imita o rollback da transação real: erro de fn restaura o
// estado do pacote e dos agendamentos como estavam antes.
func (f *fakeRepo) Atomically(_ context.Context, fn func(domain.Repository) error) error {
	snapPackages := map[uint]*models.Package{}
	for id, p := range f.packages {
		cp := *p
		snapPackages[id] = &cp
	}
	snapAppointments := make([]*models.Appointment, len(f.appointments))
	copy(snapAppointments, f.appointments)
	snapNextID := f.nextID

	if err := fn(f); err != nil {
		f.packages = snapPackages
		f.appointments = snapAppointments
		f.nextID = snapNextID
		return err
	}
	return nil
}

func (f *fakeRepo) GetClinicByID(_ context.Context, id uint) (*models.Clinic, error) {
	c, ok := f.clinics[id]
	if !ok {
		return nil, httperr.ErrBusiness("clinic_not_found")
	}
	return c, nil
}

func (f *fakeRepo) GetClient(_ context.Context, clinicID, clientID uint) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok || c.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return c, nil
}

func (f *fakeRepo) GetService(_ context.Context, clinicID, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return s, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	ap.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, ap)
	return nil
}

func blocking(status string) bool {
	for _, s := range domain.BlockingStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

func (f *fakeRepo) AssertNoProfessionalConflict(_ context.Context, professionalID uint, start, end time.Time) error {
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID || !blocking(ap.Status) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (f *fakeRepo) AssertNoRoomConflict(_ context.Context, roomID uint, start, end time.Time) error {
	for _, ap := range f.appointments {
		if ap.RoomID == nil || *ap.RoomID != roomID || !blocking(ap.Status) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			return httperr.ErrBusiness("room_conflict")
		}
	}
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, clinicID, appointmentID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.ClinicID == clinicID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	for i, cur := range f.appointments {
		if cur.ID == ap.ID {
			cp := *ap
			f.appointments[i] = &cp
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) ListClientAppointmentsBetween(_ context.Context, clinicID, clientID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClinicID != clinicID || ap.ClientID != clientID {
			continue
		}
		if ap.StartTime.Before(start) || ap.StartTime.After(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (f *fakeRepo) GetPackage(_ context.Context, clinicID, packageID uint) (*models.Package, error) {
	p, ok := f.packages[packageID]
	if !ok || p.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("package_not_found")
	}
	return p, nil
}

func (f *fakeRepo) UpdatePackage(_ context.Context, pkg *models.Package) error {
	f.packages[pkg.ID] = pkg
	return nil
}

func (f *fakeRepo) CreateCalendarBlock(_ context.Context, block *models.CalendarBlock) error {
	block.ID = f.nextID
	f.nextID++
	f.blocks = append(f.blocks, block)
	return nil
}

func (f *fakeRepo) ListCalendarBlocks(_ context.Context, clinicID uint, start, end time.Time) ([]models.CalendarBlock, error) {
	var out []models.CalendarBlock
	for _, b := range f.blocks {
		if b.ClinicID != clinicID {
			continue
		}
		if domain.Overlaps(b.StartTime, b.EndTime, start, end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteCalendarBlock(_ context.Context, clinicID, blockID uint) error {
	for i, b := range f.blocks {
		if b.ID == blockID && b.ClinicID == clinicID {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness("block_not_found")
}

// fakeCache registra invalidações para os asserts.
type fakeCache struct {
	store       map[string][]byte
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func cacheKey(professionalID uint, day time.Time) string {
	return fmt.Sprintf("%d:%s", professionalID, day.Format("2006-01-02"))
}

func (f *fakeCache) GetDay(_ context.Context, professionalID uint, day time.Time) ([]byte, bool) {
	payload, ok := f.store[cacheKey(professionalID, day)]
	return payload, ok
}

func (f *fakeCache) SetDay(_ context.Context, professionalID uint, day time.Time, payload []byte) {
	f.store[cacheKey(professionalID, day)] = payload
}

func (f *fakeCache) InvalidateDay(_ context.Context, professionalID uint, day time.Time) {
	key := cacheKey(professionalID, day)
	delete(f.store, key)
	f.invalidated = append(f.invalidated, key)
}
