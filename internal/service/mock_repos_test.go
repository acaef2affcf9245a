package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
)

// newMockRepository assembles a Repository backed by in-memory fakes.
// BeginTx on it returns a nil tx, so inTx runs callbacks directly.
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:          newMockUserRepo(),
		Department:    newMockDeptRepo(),
		Specialty:     newMockSpecialtyRepo(),
		Level:         newMockLevelRepo(),
		Group:         newMockGroupRepo(),
		Teacher:       newMockTeacherRepo(),
		Student:       newMockStudentRepo(),
		Subject:       newMockSubjectRepo(),
		Room:          newMockRoomRepo(),
		TimetableSlot: newMockSlotRepo(),
		Session:       newMockSessionRepo(),
		Absence:       newMockAbsenceRepo(),
		Grade:         newMockGradeRepo(),
		Message:       newMockMessageRepo(),
		Notification:  newMockNotificationRepo(),
		Event:         newMockEventRepo(),
	}
}

// window applies Page to an already ordered slice.
func window[T any](list []T, p repository.Page) []T {
	limit := p.Limit
	if limit <= 0 {
		limit = repository.DefaultLimit
	}
	if p.Skip >= len(list) {
		return []T{}
	}
	end := p.Skip + limit
	if end > len(list) {
		end = len(list)
	}
	return list[p.Skip:end]
}

func sortedIDs[T any](m map[int]*T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByCIN(_ context.Context, cin string) (*model.User, error) {
	for _, u := range m.users {
		if u.CIN == cin {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, page repository.Page) ([]model.User, error) {
	var result []model.User
	for _, id := range sortedIDs(m.users) {
		result = append(result, *m.users[id])
	}
	return window(result, page), nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	depts  map[int]*model.Department
	nextID int
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{depts: make(map[int]*model.Department)}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	m.nextID++
	dept.ID = m.nextID
	m.depts[dept.ID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id int) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByCode(_ context.Context, code string) (*model.Department, error) {
	for _, d := range m.depts {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context, page repository.Page) ([]model.Department, error) {
	var result []model.Department
	for _, id := range sortedIDs(m.depts) {
		result = append(result, *m.depts[id])
	}
	return window(result, page), nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	m.depts[dept.ID] = dept
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id int) error {
	delete(m.depts, id)
	return nil
}

// ── Mock SpecialtyRepository ──

type mockSpecialtyRepo struct {
	specialties map[int]*model.Specialty
	nextID      int
}

func newMockSpecialtyRepo() *mockSpecialtyRepo {
	return &mockSpecialtyRepo{specialties: make(map[int]*model.Specialty)}
}

func (m *mockSpecialtyRepo) Create(_ context.Context, s *model.Specialty) error {
	m.nextID++
	s.ID = m.nextID
	m.specialties[s.ID] = s
	return nil
}

func (m *mockSpecialtyRepo) GetByID(_ context.Context, id int) (*model.Specialty, error) {
	if s, ok := m.specialties[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpecialtyRepo) GetByCode(_ context.Context, code string) (*model.Specialty, error) {
	for _, s := range m.specialties {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpecialtyRepo) List(_ context.Context, departmentID *int, page repository.Page) ([]model.Specialty, error) {
	var result []model.Specialty
	for _, id := range sortedIDs(m.specialties) {
		s := m.specialties[id]
		if departmentID != nil && s.DepartmentID != *departmentID {
			continue
		}
		result = append(result, *s)
	}
	return window(result, page), nil
}

func (m *mockSpecialtyRepo) Update(_ context.Context, s *model.Specialty) error {
	m.specialties[s.ID] = s
	return nil
}

func (m *mockSpecialtyRepo) Delete(_ context.Context, id int) error {
	delete(m.specialties, id)
	return nil
}

// ── Mock LevelRepository ──

type mockLevelRepo struct {
	levels map[int]*model.Level
	nextID int
}

func newMockLevelRepo() *mockLevelRepo {
	return &mockLevelRepo{levels: make(map[int]*model.Level)}
}

func (m *mockLevelRepo) Create(_ context.Context, l *model.Level) error {
	m.nextID++
	l.ID = m.nextID
	m.levels[l.ID] = l
	return nil
}

func (m *mockLevelRepo) GetByID(_ context.Context, id int) (*model.Level, error) {
	if l, ok := m.levels[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLevelRepo) List(_ context.Context, specialtyID *int, page repository.Page) ([]model.Level, error) {
	var result []model.Level
	for _, id := range sortedIDs(m.levels) {
		l := m.levels[id]
		if specialtyID != nil && l.SpecialtyID != *specialtyID {
			continue
		}
		result = append(result, *l)
	}
	return window(result, page), nil
}

func (m *mockLevelRepo) Delete(_ context.Context, id int) error {
	delete(m.levels, id)
	return nil
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	groups map[int]*model.Group
	nextID int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[int]*model.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, g *model.Group) error {
	m.nextID++
	g.ID = m.nextID
	m.groups[g.ID] = g
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id int) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context, levelID *int, page repository.Page) ([]model.Group, error) {
	var result []model.Group
	for _, id := range sortedIDs(m.groups) {
		g := m.groups[id]
		if levelID != nil && g.LevelID != *levelID {
			continue
		}
		result = append(result, *g)
	}
	return window(result, page), nil
}

func (m *mockGroupRepo) Update(_ context.Context, g *model.Group) error {
	m.groups[g.ID] = g
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id int) error {
	delete(m.groups, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[int]*model.Teacher
	nextID   int
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[int]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, t *model.Teacher) error {
	m.nextID++
	t.ID = m.nextID
	m.teachers[t.ID] = t
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id int) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByEmployeeID(_ context.Context, employeeID string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.EmployeeID == employeeID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, page repository.Page) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, id := range sortedIDs(m.teachers) {
		result = append(result, *m.teachers[id])
	}
	return window(result, page), nil
}

func (m *mockTeacherRepo) ListFirst(ctx context.Context, n int) ([]model.Teacher, error) {
	return m.List(ctx, repository.Page{Limit: n})
}

func (m *mockTeacherRepo) Update(_ context.Context, t *model.Teacher) error {
	m.teachers[t.ID] = t
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id int) error {
	delete(m.teachers, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[int]*model.Student
	nextID   int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[int]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, s *model.Student) error {
	m.nextID++
	s.ID = m.nextID
	m.students[s.ID] = s
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByStudentNumber(_ context.Context, number string) (*model.Student, error) {
	for _, s := range m.students {
		if s.StudentNumber == number {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID int) (*model.Student, error) {
	for _, s := range m.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, page repository.Page) ([]model.Student, error) {
	var result []model.Student
	for _, id := range sortedIDs(m.students) {
		result = append(result, *m.students[id])
	}
	return window(result, page), nil
}

func (m *mockStudentRepo) ListByDepartment(_ context.Context, departmentID int) ([]model.Student, error) {
	var result []model.Student
	for _, id := range sortedIDs(m.students) {
		s := m.students[id]
		if s.Specialty != nil && s.Specialty.DepartmentID == departmentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, s *model.Student) error {
	m.students[s.ID] = s
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int) error {
	delete(m.students, id)
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[int]*model.Subject
	nextID   int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[int]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, s *model.Subject) error {
	m.nextID++
	s.ID = m.nextID
	m.subjects[s.ID] = s
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id int) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, levelID *int, page repository.Page) ([]model.Subject, error) {
	var result []model.Subject
	for _, id := range sortedIDs(m.subjects) {
		s := m.subjects[id]
		if levelID != nil && s.LevelID != *levelID {
			continue
		}
		result = append(result, *s)
	}
	return window(result, page), nil
}

func (m *mockSubjectRepo) Update(_ context.Context, s *model.Subject) error {
	m.subjects[s.ID] = s
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id int) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms  map[int]*model.Room
	nextID int
	err    error
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[int]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	m.nextID++
	room.ID = m.nextID
	m.rooms[room.ID] = room
	return nil
}

func (m *mockRoomRepo) CreateIfAbsent(ctx context.Context, rooms []model.Room) error {
	for i := range rooms {
		if _, err := m.GetByCode(ctx, rooms[i].Code); err == nil {
			continue
		}
		r := rooms[i]
		if err := m.Create(ctx, &r); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id int) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) GetByCode(_ context.Context, code string) (*model.Room, error) {
	for _, r := range m.rooms {
		if r.Code == code {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(ctx context.Context, page repository.Page) ([]model.Room, error) {
	all, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return window(all, page), nil
}

func (m *mockRoomRepo) ListAll(_ context.Context) ([]model.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.Room{}
	for _, id := range sortedIDs(m.rooms) {
		result = append(result, *m.rooms[id])
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.ID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id int) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock TimetableSlotRepository ──

type mockSlotRepo struct {
	slots  map[int]*model.TimetableSlot
	nextID int
	calls  int
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[int]*model.TimetableSlot)}
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.TimetableSlot) error {
	m.nextID++
	slot.ID = m.nextID
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockSlotRepo) GetByID(_ context.Context, id int) (*model.TimetableSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) List(_ context.Context, f repository.SlotFilter) ([]model.TimetableSlot, error) {
	var result []model.TimetableSlot
	for _, id := range sortedIDs(m.slots) {
		s := m.slots[id]
		switch {
		case f.RoomID != nil && s.RoomID != *f.RoomID,
			f.TeacherID != nil && s.TeacherID != *f.TeacherID,
			f.GroupID != nil && s.GroupID != *f.GroupID,
			f.DayOfWeek != nil && s.DayOfWeek != *f.DayOfWeek,
			f.ActiveOnly && !s.IsActive:
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSlotRepo) ListActiveByRooms(_ context.Context, roomIDs []int) ([]model.TimetableSlot, error) {
	m.calls++
	want := make(map[int]bool, len(roomIDs))
	for _, id := range roomIDs {
		want[id] = true
	}
	var result []model.TimetableSlot
	for _, id := range sortedIDs(m.slots) {
		s := m.slots[id]
		if s.IsActive && want[s.RoomID] {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) ListDetailed(ctx context.Context, f repository.SlotFilter) ([]model.TimetableSlot, error) {
	return m.List(ctx, f)
}

func (m *mockSlotRepo) Update(_ context.Context, slot *model.TimetableSlot) error {
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id int) error {
	delete(m.slots, id)
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[int]*model.Session
	nextID   int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[int]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, s *model.Session) error {
	m.nextID++
	s.ID = m.nextID
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id int) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context, f repository.SessionFilter, page repository.Page) ([]model.Session, error) {
	var result []model.Session
	for _, id := range sortedIDs(m.sessions) {
		s := m.sessions[id]
		switch {
		case f.TimetableSlotID != nil && s.TimetableSlotID != *f.TimetableSlotID,
			f.RoomID != nil && s.RoomID != *f.RoomID,
			f.From != nil && s.SessionDate.Before(*f.From),
			f.To != nil && s.SessionDate.After(*f.To),
			f.Status != "" && s.Status != f.Status:
			continue
		}
		result = append(result, *s)
	}
	return window(result, page), nil
}

func (m *mockSessionRepo) Update(_ context.Context, s *model.Session) error {
	m.sessions[s.ID] = s
	return nil
}

// ── Mock AbsenceRepository ──

type mockAbsenceRepo struct {
	absences map[int]*model.Absence
	nextID   int
}

func newMockAbsenceRepo() *mockAbsenceRepo {
	return &mockAbsenceRepo{absences: make(map[int]*model.Absence)}
}

func (m *mockAbsenceRepo) Create(_ context.Context, a *model.Absence) error {
	m.nextID++
	a.ID = m.nextID
	m.absences[a.ID] = a
	return nil
}

func (m *mockAbsenceRepo) GetByID(_ context.Context, id int) (*model.Absence, error) {
	if a, ok := m.absences[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAbsenceRepo) GetByStudentSession(_ context.Context, studentID, sessionID int) (*model.Absence, error) {
	for _, a := range m.absences {
		if a.StudentID == studentID && a.SessionID == sessionID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAbsenceRepo) List(_ context.Context, studentID, sessionID *int, page repository.Page) ([]model.Absence, error) {
	var result []model.Absence
	for _, id := range sortedIDs(m.absences) {
		a := m.absences[id]
		if studentID != nil && a.StudentID != *studentID {
			continue
		}
		if sessionID != nil && a.SessionID != *sessionID {
			continue
		}
		result = append(result, *a)
	}
	return window(result, page), nil
}

func (m *mockAbsenceRepo) Update(_ context.Context, a *model.Absence) error {
	m.absences[a.ID] = a
	return nil
}

func (m *mockAbsenceRepo) Delete(_ context.Context, id int) error {
	delete(m.absences, id)
	return nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades map[int]*model.Grade
	nextID int
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[int]*model.Grade)}
}

func (m *mockGradeRepo) Create(_ context.Context, g *model.Grade) error {
	m.nextID++
	g.ID = m.nextID
	m.grades[g.ID] = g
	return nil
}

func (m *mockGradeRepo) GetByID(_ context.Context, id int) (*model.Grade, error) {
	if g, ok := m.grades[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) List(_ context.Context, studentID, subjectID *int, page repository.Page) ([]model.Grade, error) {
	var result []model.Grade
	for _, id := range sortedIDs(m.grades) {
		g := m.grades[id]
		if studentID != nil && g.StudentID != *studentID {
			continue
		}
		if subjectID != nil && g.SubjectID != *subjectID {
			continue
		}
		result = append(result, *g)
	}
	return window(result, page), nil
}

func (m *mockGradeRepo) Update(_ context.Context, g *model.Grade) error {
	m.grades[g.ID] = g
	return nil
}

func (m *mockGradeRepo) Delete(_ context.Context, id int) error {
	delete(m.grades, id)
	return nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	messages map[int]*model.Message
	nextID   int
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{messages: make(map[int]*model.Message)}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.Message) error {
	m.nextID++
	msg.ID = m.nextID
	msg.CreatedAt = time.Now()
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockMessageRepo) GetByID(_ context.Context, id int) (*model.Message, error) {
	if msg, ok := m.messages[id]; ok {
		return msg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMessageRepo) ListInbox(_ context.Context, userID int, unreadOnly bool, page repository.Page) ([]model.Message, error) {
	var result []model.Message
	for _, id := range sortedIDs(m.messages) {
		msg := m.messages[id]
		if msg.RecipientID != userID || (unreadOnly && msg.IsRead) {
			continue
		}
		result = append(result, *msg)
	}
	return window(result, page), nil
}

func (m *mockMessageRepo) ListOutbox(_ context.Context, userID int, page repository.Page) ([]model.Message, error) {
	var result []model.Message
	for _, id := range sortedIDs(m.messages) {
		if msg := m.messages[id]; msg.SenderID == userID {
			result = append(result, *msg)
		}
	}
	return window(result, page), nil
}

func (m *mockMessageRepo) MarkRead(_ context.Context, id int, at time.Time) error {
	msg, ok := m.messages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	msg.IsRead = true
	msg.ReadAt = &at
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[int]*model.Notification
	nextID        int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[int]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.nextID++
	n.ID = m.nextID
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id int) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID int, unreadOnly bool, page repository.Page) ([]model.Notification, error) {
	var result []model.Notification
	for _, id := range sortedIDs(m.notifications) {
		n := m.notifications[id]
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		result = append(result, *n)
	}
	return window(result, page), nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id int) error {
	n, ok := m.notifications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.IsRead = true
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID int) (int64, error) {
	var updated int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[int]*model.Event
	nextID int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[int]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, e *model.Event) error {
	m.nextID++
	e.ID = m.nextID
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id int) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context, from, to *time.Time, page repository.Page) ([]model.Event, error) {
	var result []model.Event
	for _, id := range sortedIDs(m.events) {
		e := m.events[id]
		if from != nil && e.EndDate.Before(*from) {
			continue
		}
		if to != nil && e.StartDate.After(*to) {
			continue
		}
		result = append(result, *e)
	}
	return window(result, page), nil
}

func (m *mockEventRepo) Update(_ context.Context, e *model.Event) error {
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id int) error {
	delete(m.events, id)
	return nil
}
