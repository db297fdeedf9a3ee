package authz

import "github.com/VitalCareServices/clinic-scheduler/internal/domain/role"

// ======================================================
// PERMISSION TABLE
// ======================================================
//
// Closed (operation, role) table checked once at the boundary before a
// use case runs. Replaces ad-hoc role string comparisons.

type Operation string

const (
	AppointmentCreate     Operation = "appointment.create"
	AppointmentListAll    Operation = "appointment.list_all"
	AppointmentListMine   Operation = "appointment.list_mine"
	AppointmentListDoctor Operation = "appointment.list_doctor"
	AppointmentGet        Operation = "appointment.get"
	AppointmentUpdate     Operation = "appointment.update"
	AppointmentDelete     Operation = "appointment.delete"

	VisitComplete Operation = "visit.complete"

	PatientCreate      Operation = "patient.create"
	PatientList        Operation = "patient.list"
	PatientGet         Operation = "patient.get"
	PatientUpdate      Operation = "patient.update"
	PatientDelete      Operation = "patient.delete"
	PatientSelfProfile Operation = "patient.self_profile"

	RecordCreate        Operation = "record.create"
	RecordListAll       Operation = "record.list_all"
	RecordListByPatient Operation = "record.list_by_patient"
	RecordListOwn       Operation = "record.list_own"
	RecordListMine      Operation = "record.list_mine"
	RecordUpdate        Operation = "record.update"
	RecordDelete        Operation = "record.delete"
	RecordAttach        Operation = "record.attach"

	AuditList Operation = "audit.list"
)

var table = map[Operation][]role.Role{
	AppointmentCreate:     {role.Patient},
	AppointmentListAll:    {role.Doctor, role.Admin},
	AppointmentListMine:   {role.Patient},
	AppointmentListDoctor: {role.Doctor},
	AppointmentGet:        {role.Patient, role.Doctor, role.Admin},
	AppointmentUpdate:     {role.Doctor, role.Admin},
	AppointmentDelete:     {role.Admin},

	VisitComplete: {role.Doctor},

	PatientCreate:      {role.Doctor, role.Admin},
	PatientList:        {role.Doctor, role.Admin},
	PatientGet:         {role.Doctor, role.Admin},
	PatientUpdate:      {role.Doctor, role.Admin},
	PatientDelete:      {role.Admin},
	PatientSelfProfile: {role.Patient},

	RecordCreate:        {role.Doctor},
	RecordListAll:       {role.Doctor, role.Admin},
	RecordListByPatient: {role.Doctor, role.Admin},
	RecordListOwn:       {role.Doctor},
	RecordListMine:      {role.Patient},
	RecordUpdate:        {role.Doctor},
	RecordDelete:        {role.Admin},
	RecordAttach:        {role.Doctor},

	AuditList: {role.Admin},
}

// Allowed reports whether r may invoke op.
func Allowed(op Operation, r role.Role) bool {
	for _, allowed := range table[op] {
		if allowed == r {
			return true
		}
	}
	return false
}
