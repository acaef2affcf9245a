package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/config"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/jwt"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/password"
)

// ── helpers ──

func testHasher() *password.Hasher {
	return password.NewHasher(bcrypt.MinCost)
}

func testAuthConfig() *config.Config {
	return &config.Config{Auth: config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "tununiversity",
		AccessTokenTTL: 30 * time.Minute,
		BcryptCost:     bcrypt.MinCost,
	}}
}

func setupAuth() (AuthService, UserService, *repository.Repository) {
	repo := newMockRepository()
	cfg := testAuthConfig()
	hasher := testHasher()
	auth := NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, hasher, zap.NewNop())
	return auth, NewUserService(repo, hasher, zap.NewNop()), repo
}

// seedAcademics creates department 1, specialty 1, level 1 and group 1.
func seedAcademics(t *testing.T, repo *repository.Repository) {
	t.Helper()
	ctx := context.Background()
	if err := repo.Department.Create(ctx, &model.Department{Name: "Computer Science", Code: "CS"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Specialty.Create(ctx, &model.Specialty{Name: "Software Engineering", Code: "SE", DepartmentID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Level.Create(ctx, &model.Level{Name: "First year", Code: "L1", SpecialtyID: 1, YearNumber: 1}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Group.Create(ctx, &model.Group{Name: "Group A", Code: "L1-A", LevelID: 1, MaxStudents: 30}); err != nil {
		t.Fatal(err)
	}
}

func studentRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		FirstName:      "Yasmine",
		LastName:       "Gharbi",
		Email:          "yasmine.gharbi@univ.tn",
		CIN:            "09876543",
		StudentNumber:  "STU-2024-001",
		GroupID:        1,
		SpecialtyID:    1,
		EnrollmentDate: "2024-09-15",
	}
}

// ── users ──

func TestUserService_Create_DefaultsPasswordToCIN(t *testing.T) {
	auth, users, repo := setupAuth()
	ctx := context.Background()

	created, err := users.Create(ctx, &dto.CreateUserRequest{
		Email: "admin@univ.tn", FirstName: "Sami", LastName: "Ayari", Role: model.RoleAdmin, CIN: "11223344",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsActive {
		t.Error("new accounts are active")
	}

	stored, _ := repo.User.GetByID(ctx, created.ID)
	if stored.PasswordHash == "11223344" {
		t.Fatal("password must never be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("11223344")); err != nil {
		t.Errorf("hash should verify against the CIN: %v", err)
	}

	if _, err := auth.Login(ctx, &dto.LoginRequest{Identifier: "11223344", Password: "11223344"}); err != nil {
		t.Errorf("login by CIN: %v", err)
	}
}

func TestUserService_Create_Duplicates(t *testing.T) {
	_, users, _ := setupAuth()
	ctx := context.Background()
	req := &dto.CreateUserRequest{Email: "a@univ.tn", FirstName: "A", LastName: "B", Role: model.RoleTeacher, CIN: "100"}
	if _, err := users.Create(ctx, req); err != nil {
		t.Fatal(err)
	}

	_, err := users.Create(ctx, &dto.CreateUserRequest{Email: "other@univ.tn", FirstName: "C", LastName: "D", Role: model.RoleTeacher, CIN: "100"})
	if !errors.Is(err, ErrCINTaken) {
		t.Fatalf("expected ErrCINTaken, got %v", err)
	}
	if e, _ := pkgerrors.As(err); e.Message != "User with CIN 100 already exists" {
		t.Errorf("message = %q", e.Message)
	}

	_, err = users.Create(ctx, &dto.CreateUserRequest{Email: "a@univ.tn", FirstName: "C", LastName: "D", Role: model.RoleTeacher, CIN: "200"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	_, users, _ := setupAuth()
	if _, err := users.GetByID(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ── auth ──

func TestAuthService_Login(t *testing.T) {
	auth, users, repo := setupAuth()
	ctx := context.Background()
	created, err := users.Create(ctx, &dto.CreateUserRequest{
		Email: "prof@univ.tn", FirstName: "Leila", LastName: "Mansour", Role: model.RoleTeacher, CIN: "555", Password: "s3cret",
	})
	if err != nil {
		t.Fatal(err)
	}

	tok, err := auth.Login(ctx, &dto.LoginRequest{Identifier: "prof@univ.tn", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if tok.TokenType != "bearer" || tok.AccessToken == "" || tok.ExpiresIn != 1800 {
		t.Errorf("token = %+v", tok)
	}
	if tok.User.ID != created.ID {
		t.Errorf("user = %+v", tok.User)
	}

	if _, err := auth.Login(ctx, &dto.LoginRequest{Identifier: "prof@univ.tn", Password: "555"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := auth.Login(ctx, &dto.LoginRequest{Identifier: "nobody@univ.tn", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: %v", err)
	}

	stored, _ := repo.User.GetByID(ctx, created.ID)
	stored.IsActive = false
	if _, err := auth.Login(ctx, &dto.LoginRequest{Identifier: "555", Password: "s3cret"}); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("disabled account: %v", err)
	}
}

func TestAuthService_VerifyAndMe(t *testing.T) {
	auth, users, _ := setupAuth()
	ctx := context.Background()
	created, _ := users.Create(ctx, &dto.CreateUserRequest{
		Email: "head@univ.tn", FirstName: "Nabil", LastName: "Jaziri", Role: model.RoleDepartmentHead, CIN: "777",
	})
	tok, err := auth.Login(ctx, &dto.LoginRequest{Identifier: "777", Password: "777"})
	if err != nil {
		t.Fatal(err)
	}

	v, err := auth.Verify(ctx, tok.AccessToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !v.Valid || v.UserID != created.ID || v.Role != model.RoleDepartmentHead || v.ExpiresAt == "" {
		t.Errorf("verify = %+v", v)
	}

	if _, err := auth.Verify(ctx, "not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}

	me, err := auth.Me(ctx, created.ID)
	if err != nil || me.Email != "head@univ.tn" {
		t.Errorf("Me = %+v, %v", me, err)
	}
}

func TestAuthService_LogoutWithoutRedis(t *testing.T) {
	auth, _, _ := setupAuth()
	if err := auth.Logout(context.Background(), "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Errorf("logout without redis should be a no-op: %v", err)
	}
}

// ── students ──

func TestStudentService_Create_NewAccount(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	svc := NewStudentService(repo, testHasher(), zap.NewNop())
	ctx := context.Background()

	got, err := svc.Create(ctx, studentRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.FirstName != "Yasmine" || got.SpecialtyCode != "SE" || got.EnrollmentDate != "2024-09-15" {
		t.Errorf("student = %+v", got)
	}

	user, err := repo.User.GetByID(ctx, got.UserID)
	if err != nil {
		t.Fatalf("account not created: %v", err)
	}
	if user.Role != model.RoleStudent || !user.IsActive {
		t.Errorf("user = %+v", user)
	}
	if !testHasher().Verify(user.PasswordHash, "09876543") {
		t.Error("default password should be the CIN")
	}
}

func TestStudentService_Create_Errors(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	svc := NewStudentService(repo, testHasher(), zap.NewNop())
	ctx := context.Background()

	req := studentRequest()
	req.Email = ""
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrIdentityRequired) {
		t.Errorf("missing identity: %v", err)
	}

	// accounts opened by failed attempts are not rolled back by the fakes
	req = studentRequest()
	req.GroupID = 9
	req.CIN, req.Email = "777000", "g@univ.tn"
	_, err := svc.Create(ctx, req)
	if !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Fatalf("missing group: %v", err)
	}
	if e, _ := pkgerrors.As(err); e.Message != "Group with id 9 not found" {
		t.Errorf("message = %q", e.Message)
	}

	req = studentRequest()
	req.EnrollmentDate = "15/09/2024"
	if _, err := svc.Create(ctx, req); !errors.Is(err, pkgerrors.ErrInvalidDate) {
		t.Errorf("bad date: %v", err)
	}

	if _, err := svc.Create(ctx, studentRequest()); err != nil {
		t.Fatal(err)
	}
	dup := studentRequest()
	dup.CIN, dup.Email = "1", "x@univ.tn"
	if _, err := svc.Create(ctx, dup); !errors.Is(err, ErrStudentNumberTaken) {
		t.Errorf("duplicate student number: %v", err)
	}
}

func TestStudentService_Create_ExistingUser(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	svc := NewStudentService(repo, testHasher(), zap.NewNop())
	ctx := context.Background()
	user := &model.User{Email: "s@univ.tn", FirstName: "Omar", LastName: "Haddad", CIN: "321", Role: model.RoleStudent, IsActive: true}
	repo.User.Create(ctx, user)

	got, err := svc.Create(ctx, &dto.CreateStudentRequest{
		UserID: &user.ID, StudentNumber: "STU-2", GroupID: 1, SpecialtyID: 1, EnrollmentDate: "2024-09-01",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.UserID != user.ID || got.LastName != "Haddad" {
		t.Errorf("student = %+v", got)
	}

	missing := 99
	_, err = svc.Create(ctx, &dto.CreateStudentRequest{
		UserID: &missing, StudentNumber: "STU-3", GroupID: 1, SpecialtyID: 1, EnrollmentDate: "2024-09-01",
	})
	if !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("unknown user: %v", err)
	}
}

func TestStudentService_UpdateAndDelete(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	svc := NewStudentService(repo, testHasher(), zap.NewNop())
	ctx := context.Background()
	created, err := svc.Create(ctx, studentRequest())
	if err != nil {
		t.Fatal(err)
	}

	phone := "+216 55 000 111"
	first := "Yasmina"
	got, err := svc.Update(ctx, created.ID, &dto.UpdateStudentRequest{Phone: &phone, FirstName: &first})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Phone == nil || *got.Phone != phone || got.FirstName != "Yasmina" {
		t.Errorf("updated = %+v", got)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}

// ── teachers ──

func TestTeacherService_Create(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	svc := NewTeacherService(repo, testHasher(), zap.NewNop())
	ctx := context.Background()
	req := &dto.CreateTeacherRequest{
		FirstName: "Hela", LastName: "Bouzid", Email: "hela@univ.tn", CIN: "4444",
		EmployeeID: "EMP-01", DepartmentID: 1, HireDate: "2019-02-01",
	}

	got, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.DepartmentCode != "CS" || got.FirstName != "Hela" {
		t.Errorf("teacher = %+v", got)
	}

	dup := *req
	dup.CIN, dup.Email = "5555", "other@univ.tn"
	if _, err := svc.Create(ctx, &dup); !errors.Is(err, ErrEmployeeIDTaken) {
		t.Errorf("duplicate employee id: %v", err)
	}

	bad := *req
	bad.CIN, bad.Email, bad.EmployeeID, bad.DepartmentID = "6666", "third@univ.tn", "EMP-02", 5
	if _, err := svc.Create(ctx, &bad); !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("missing department: %v", err)
	}
}

// ── departments ──

func TestDepartmentService_HeadMustExist(t *testing.T) {
	repo := newMockRepository()
	svc := NewDepartmentService(repo, zap.NewNop())
	ctx := context.Background()
	head := 12

	_, err := svc.Create(ctx, &dto.CreateDepartmentRequest{Name: "Physics", Code: "PHY", HeadID: &head})
	if !errors.Is(err, ErrDepartmentHeadGone) {
		t.Fatalf("expected ErrDepartmentHeadGone, got %v", err)
	}
	want := "User with ID 12 does not exist. Please leave Department Head ID empty or choose a valid user ID."
	if e, _ := pkgerrors.As(err); e.Message != want {
		t.Errorf("message = %q", e.Message)
	}

	created, err := svc.Create(ctx, &dto.CreateDepartmentRequest{Name: "Physics", Code: "PHY"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateDepartmentRequest{Name: "Physics 2", Code: "PHY"}); !errors.Is(err, ErrDepartmentCodeTaken) {
		t.Errorf("duplicate code: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestDepartmentService_ListStudents(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	students := NewStudentService(repo, testHasher(), zap.NewNop())
	depts := NewDepartmentService(repo, zap.NewNop())
	ctx := context.Background()
	if _, err := students.Create(ctx, studentRequest()); err != nil {
		t.Fatal(err)
	}

	list, err := depts.ListStudents(ctx, 1)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(list) != 1 || list[0].StudentNumber != "STU-2024-001" {
		t.Errorf("students = %+v", list)
	}
	if _, err := depts.ListStudents(ctx, 3); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("unknown department: %v", err)
	}
}

// ── academic structure ──

func TestAcademicServices_ReferencesMustExist(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	ctx := context.Background()
	specialties := NewSpecialtyService(repo, zap.NewNop())
	levels := NewLevelService(repo, zap.NewNop())
	groups := NewGroupService(repo, zap.NewNop())

	if _, err := specialties.Create(ctx, &dto.CreateSpecialtyRequest{Name: "Networks", Code: "NT", DepartmentID: 4}); !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("specialty with unknown department: %v", err)
	}
	if _, err := specialties.Create(ctx, &dto.CreateSpecialtyRequest{Name: "Again", Code: "SE", DepartmentID: 1}); !errors.Is(err, ErrSpecialtyCodeTaken) {
		t.Errorf("duplicate specialty code: %v", err)
	}
	if _, err := levels.Create(ctx, &dto.CreateLevelRequest{Name: "Second year", Code: "L2", SpecialtyID: 8, YearNumber: 2}); !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("level with unknown specialty: %v", err)
	}
	if _, err := groups.Create(ctx, &dto.CreateGroupRequest{Name: "Group Z", Code: "Z", LevelID: 6}); !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("group with unknown level: %v", err)
	}

	lvl, err := levels.Create(ctx, &dto.CreateLevelRequest{Name: "Second year", Code: "L2", SpecialtyID: 1, YearNumber: 2})
	if err != nil {
		t.Fatalf("create level: %v", err)
	}
	g, err := groups.Create(ctx, &dto.CreateGroupRequest{Name: "Group B", Code: "L2-B", LevelID: lvl.ID})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if g.MaxStudents != 30 {
		t.Errorf("default max_students = %d", g.MaxStudents)
	}

	list, err := groups.List(ctx, &dto.GroupListQuery{LevelID: &lvl.ID})
	if err != nil || len(list) != 1 || list[0].ID != g.ID {
		t.Errorf("groups of level %d: %+v, %v", lvl.ID, list, err)
	}
}

func TestAcademicServices_UpdateDelete(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	ctx := context.Background()
	specialties := NewSpecialtyService(repo, zap.NewNop())
	groups := NewGroupService(repo, zap.NewNop())
	levels := NewLevelService(repo, zap.NewNop())

	name := "Software Engineering and AI"
	sp, err := specialties.Update(ctx, 1, &dto.UpdateSpecialtyRequest{Name: &name})
	if err != nil || sp.Name != name {
		t.Fatalf("update specialty: %+v, %v", sp, err)
	}
	ghost := 3
	if _, err := groups.Update(ctx, 1, &dto.UpdateGroupRequest{LevelID: &ghost}); !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("move group to unknown level: %v", err)
	}

	if err := groups.Delete(ctx, 1); err != nil {
		t.Fatalf("delete group: %v", err)
	}
	if _, err := groups.GetByID(ctx, 1); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("group after delete: %v", err)
	}
	if err := levels.Delete(ctx, 1); err != nil {
		t.Fatalf("delete level: %v", err)
	}
	if _, err := levels.GetByID(ctx, 1); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("level after delete: %v", err)
	}
	if err := specialties.Delete(ctx, 99); !errors.Is(err, ErrSpecialtyNotFound) {
		t.Errorf("delete unknown specialty: %v", err)
	}
}
