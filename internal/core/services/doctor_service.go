package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

const (
	MsgSessionExpired = "Session expired. Please log in again."
	MsgDoctorAdded    = "Doctor added successfully!"
	MsgDoctorAddFail  = "Failed to add doctor."
	MsgDoctorDeleted  = "Doctor deleted successfully."
	MsgDoctorDelFail  = "Failed to delete doctor."
)

var _ ports.DoctorDirectory = (*DoctorService)(nil)

// DoctorService backs the doctor directory shown on the admin dashboard and
// the public listing.
type DoctorService struct {
	doctors ports.DoctorAPI
	audit   ports.AuditPublisher
}

func NewDoctorService(doctors ports.DoctorAPI, audit ports.AuditPublisher) *DoctorService {
	return &DoctorService{doctors: doctors, audit: audit}
}

func (s *DoctorService) List(ctx context.Context) []domain.Doctor {
	return s.doctors.List(ctx)
}

// Filter searches by name, time slot (AM/PM) and specialty. Blank filters match all.
func (s *DoctorService) Filter(ctx context.Context, name, slot, specialty string) []domain.Doctor {
	return s.doctors.Filter(ctx, strings.TrimSpace(name), strings.TrimSpace(slot), strings.TrimSpace(specialty))
}

// Add saves a new doctor with the admin's token.
func (s *DoctorService) Add(ctx context.Context, sess *domain.Session, doctor domain.Doctor) domain.Result {
	if !sess.HasToken() {
		return domain.Failure(MsgSessionExpired)
	}

	doctor.Name = strings.TrimSpace(doctor.Name)
	doctor.Email = strings.TrimSpace(doctor.Email)
	doctor.Phone = strings.TrimSpace(doctor.Phone)
	doctor.Password = strings.TrimSpace(doctor.Password)
	doctor.Specialty = strings.TrimSpace(doctor.Specialty)

	res := s.doctors.Save(ctx, doctor, sess.Token)
	if !res.Success {
		if res.Message == "" {
			res.Message = MsgDoctorAddFail
		}
		return res
	}

	record(ctx, s.audit, ports.AuditDoctorAdded, sess, doctor.Email)
	return domain.Result{Success: true, Message: MsgDoctorAdded}
}

// Delete removes a doctor with the admin's token.
func (s *DoctorService) Delete(ctx context.Context, sess *domain.Session, id int64) domain.Result {
	if !sess.HasToken() {
		return domain.Failure(MsgSessionExpired)
	}

	res := s.doctors.Delete(ctx, id, sess.Token)
	if !res.Success {
		return domain.Failure(MsgDoctorDelFail)
	}

	record(ctx, s.audit, ports.AuditDoctorDeleted, sess, strconv.FormatInt(id, 10))
	return domain.Result{Success: true, Message: MsgDoctorDeleted}
}
