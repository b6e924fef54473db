package mockapi

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

type collection string

const (
	collectionDoctors      collection = "doctors"
	collectionPatients     collection = "patients"
	collectionAppointments collection = "appointments"
	collectionReviews      collection = "reviews"
)

// mockUser is an account in the mock backend. Passwords are plain text;
// this store never leaves the developer's machine.
type mockUser struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// document is a Mongo-style record keyed by `_id`, matching what the hosted
// backend serves.
type document = map[string]any

// fixtureStore holds the mock backend's state in memory.
type fixtureStore struct {
	mu          sync.RWMutex
	users       []*mockUser
	collections map[collection][]document
}

func newFixtureStore() *fixtureStore {
	s := &fixtureStore{
		collections: make(map[collection][]document),
	}
	s.seed()
	return s
}

// seed loads demo accounts and records so a fresh mock is immediately usable.
func (s *fixtureStore) seed() {
	s.users = []*mockUser{
		{ID: "1", Name: "Demo Patient", Email: "patient@swiftcare.test", Password: "patient123", Role: models.RolePatient},
		{ID: "2", Name: "Dr. Sarah Ahmed", Email: "sarah.ahmed@swiftcare.test", Password: "doctor123", Role: models.RoleDoctor},
		{ID: "3", Name: "Admin", Email: "admin@swiftcare.test", Password: "admin123", Role: models.RoleAdmin},
	}

	s.collections[collectionDoctors] = []document{
		{
			"_id": "d1", "name": "Dr. Sarah Ahmed", "email": "sarah.ahmed@swiftcare.test",
			"specialty": "Cardiology", "location": "Lahore", "rating": 4.8,
			"experience": "12 years", "fee": "$50", "available": true,
		},
		{
			"_id": "d2", "name": "Dr. Omar Malik", "email": "omar.malik@swiftcare.test",
			"specialty": "Dermatology", "location": "Karachi", "rating": 4.5,
			"experience": "8 years", "fee": "$35", "available": true,
		},
	}
	s.collections[collectionPatients] = []document{
		{
			"_id": "1", "name": "Demo Patient", "email": "patient@swiftcare.test",
			"age": 34, "gender": "male", "phone": "+92 300 0000000", "address": "Lahore",
		},
	}
	s.collections[collectionAppointments] = []document{
		{
			"_id": "a1", "patientId": "1", "doctorId": "d1",
			"patientName": "Demo Patient", "doctorName": "Dr. Sarah Ahmed",
			"doctorSpecialty": "Cardiology", "date": "2026-09-10", "time": "10:30 AM",
			"type": models.AppointmentVideoCall, "status": models.StatusUpcoming,
		},
	}
	s.collections[collectionReviews] = []document{
		{
			"_id": "r1", "patientId": "1", "doctorId": "d1",
			"patientName": "Demo Patient", "doctorName": "Dr. Sarah Ahmed",
			"rating": 5.0, "text": "Very thorough.", "date": "2026-08-01",
		},
	}
}

// userByEmail finds an account by email, case-insensitively.
func (s *fixtureStore) userByEmail(email string) (*mockUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return nil, false
}

// userByID finds an account by id.
func (s *fixtureStore) userByID(id string) (*mockUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// addUser registers a new account and returns it.
func (s *fixtureStore) addUser(name, email, password string, role models.Role) *mockUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &mockUser{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}
	s.users = append(s.users, u)
	return u
}

// list returns a copy of every document in a collection.
func (s *fixtureStore) list(c collection) []document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]document, len(s.collections[c]))
	for i, d := range s.collections[c] {
		docs[i] = cloneDocument(d)
	}
	return docs
}

// get returns one document by its `_id`.
func (s *fixtureStore) get(c collection, id string) (document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.collections[c] {
		if documentID(d) == id {
			return cloneDocument(d), true
		}
	}
	return nil, false
}

// insert stores a new document, assigning an `_id`.
func (s *fixtureStore) insert(c collection, doc document) document {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneDocument(doc)
	delete(stored, "id")
	stored["_id"] = uuid.New().String()
	s.collections[c] = append(s.collections[c], stored)
	return cloneDocument(stored)
}

// replace overwrites the document with the given `_id`.
func (s *fixtureStore) replace(c collection, id string, doc document) (document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.collections[c] {
		if documentID(d) == id {
			stored := cloneDocument(doc)
			delete(stored, "id")
			stored["_id"] = id
			s.collections[c][i] = stored
			return cloneDocument(stored), true
		}
	}
	return nil, false
}

// remove deletes the document with the given `_id`.
func (s *fixtureStore) remove(c collection, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[c]
	for i, d := range docs {
		if documentID(d) == id {
			s.collections[c] = append(docs[:i], docs[i+1:]...)
			return true
		}
	}
	return false
}

func documentID(d document) string {
	id, _ := d["_id"].(string)
	return id
}

func cloneDocument(d document) document {
	out := make(document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
