package models

// Doctor is a practitioner profile as served by /doctors.
type Doctor struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Specialty  string   `json:"specialty"`
	Location   string   `json:"location"`
	Rating     float64  `json:"rating"`
	Experience string   `json:"experience"`
	Fee        string   `json:"fee"` // Display string, e.g. "$50"
	Image      string   `json:"image"`
	Available  bool     `json:"available"`
	Phone      string   `json:"phone,omitempty"`
	About      string   `json:"about,omitempty"`
	Education  []string `json:"education,omitempty"`
	Services   []string `json:"services,omitempty"`
}

// Patient is a patient profile as served by /patients.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Avatar    string `json:"avatar,omitempty"`
	BloodType string `json:"bloodType,omitempty"`
	LastVisit string `json:"lastVisit,omitempty"`
}

// Appointment types and statuses accepted by the backend.
const (
	AppointmentVideoCall   = "Video Call"
	AppointmentAudioCall   = "Audio Call"
	AppointmentChat        = "Chat"
	AppointmentDirectVisit = "Direct Visit"

	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment is a booking as served by /appointments. Dates and times are
// backend-formatted strings; the client treats them as opaque display values.
type Appointment struct {
	ID              string `json:"id"`
	PatientID       string `json:"patientId"`
	DoctorID        string `json:"doctorId"`
	PatientName     string `json:"patientName"`
	DoctorName      string `json:"doctorName"`
	DoctorSpecialty string `json:"doctorSpecialty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
}

// Review is a patient review of a doctor as served by /reviews.
type Review struct {
	ID          string  `json:"id"`
	PatientID   string  `json:"patientId"`
	DoctorID    string  `json:"doctorId"`
	PatientName string  `json:"patientName"`
	DoctorName  string  `json:"doctorName"`
	Rating      float64 `json:"rating"`
	Text        string  `json:"text"`
	Date        string  `json:"date"`
	Avatar      string  `json:"avatar,omitempty"`
}

// DoctorStats is a doctor annotated with their appointment volume, used in
// the admin dashboard's top-doctors table.
type DoctorStats struct {
	Doctor
	TotalAppointments int `json:"totalAppointments"`
}

// DashboardStats aggregates counts the admin dashboard renders. It is
// computed client-side from the doctors, patients and appointments lists;
// the backend has no dedicated stats endpoint.
type DashboardStats struct {
	TotalDoctors       int           `json:"totalDoctors"`
	TotalPatients      int           `json:"totalPatients"`
	TotalAppointments  int           `json:"totalAppointments"`
	TotalRevenue       int           `json:"totalRevenue"`
	TopDoctors         []DoctorStats `json:"topDoctors"`
	RecentAppointments []Appointment `json:"recentAppointments"`
}
