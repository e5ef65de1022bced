package user_test

import (
	"testing"

	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/user"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
)

func newService() *user.Service {
	return user.NewService(inmemdb.NewUserRepository(inmemdb.Open()))
}

func TestRegister(t *testing.T) {
	svc := newService()

	usr, err := svc.Register(user.NewUser{
		Username: "amina",
		Password: "Str0ngPwd",
		FullName: "Amina Okoro",
		Email:    "amina@school.test",
		Role:     user.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if usr.ID <= 0 {
		t.Errorf("id = %d; want > 0", usr.ID)
	}
	if err = usr.CheckPassword("Str0ngPwd"); err != nil {
		t.Errorf("CheckPassword failed: %v", err)
	}
	if err = usr.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword accepted a wrong password")
	}
	if usr.JoinDate.IsZero() {
		t.Error("joinDate not set")
	}

	// duplicate username is a validation error
	_, err = svc.Register(user.NewUser{
		Username: "amina",
		Password: "OtherPwd1",
		FullName: "Other Amina",
		Email:    "other@school.test",
		Role:     user.RoleTeacher,
	})
	if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("duplicate Register err = %v; want *core.ValidationError", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newService()

	if _, err := svc.Register(user.NewUser{
		Username: "joseph",
		Password: "Str0ngPwd",
		FullName: "Joseph Mwangi",
		Email:    "joseph@school.test",
		Role:     user.RoleTeacher,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	usr, err := svc.Authenticate("joseph", "Str0ngPwd")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if !usr.IsTeacher() {
		t.Errorf("role = %q; want teacher", usr.Role)
	}

	// both a bad password and an unknown username read as not-found
	if _, err = svc.Authenticate("joseph", "wrong"); err != user.ErrNotFound {
		t.Errorf("bad password err = %v; want ErrNotFound", err)
	}
	if _, err = svc.Authenticate("nobody", "Str0ngPwd"); err != user.ErrNotFound {
		t.Errorf("unknown username err = %v; want ErrNotFound", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := newService()

	usr, err := svc.Register(user.NewUser{
		Username: "faith",
		Password: "OldPwd123",
		FullName: "Faith Achieng",
		Email:    "faith@school.test",
		Role:     user.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err = svc.ChangePassword(usr.ID, "NewPwd456"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if _, err = svc.Authenticate("faith", "NewPwd456"); err != nil {
		t.Errorf("Authenticate with new password failed: %v", err)
	}
	if _, err = svc.Authenticate("faith", "OldPwd123"); err == nil {
		t.Error("old password still accepted")
	}
}
