package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/turnogo/turnogo/internal/appointment"
)

type fakeRepo struct {
	listByRange func(start, end time.Time) ([]*appointment.Appointment, error)
	create      func(a *appointment.Appointment) error
	cancel      func(id int64) error
}

func (f fakeRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	if f.create == nil {
		return errors.New("not implemented")
	}
	return f.create(a)
}

func (f fakeRepo) Get(ctx context.Context, id int64) (*appointment.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) Cancel(ctx context.Context, id int64) error {
	if f.cancel == nil {
		return errors.New("not implemented")
	}
	return f.cancel(id)
}

func (f fakeRepo) Reschedule(ctx context.Context, id int64, newDate time.Time, newStart string) (*appointment.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*appointment.Appointment, error) {
	if f.listByRange == nil {
		return nil, errors.New("not implemented")
	}
	return f.listByRange(start, end)
}

func (f fakeRepo) Close() error {
	return nil
}

func TestLoadRangeReturnsAppointmentsLoadedMsg(t *testing.T) {
	start := time.Date(2025, 9, 19, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 6)

	var gotStart, gotEnd time.Time
	repo := fakeRepo{
		listByRange: func(s, e time.Time) ([]*appointment.Appointment, error) {
			gotStart, gotEnd = s, e
			return []*appointment.Appointment{
				{ID: 1, Client: "Ana", Date: start, Start: "09:00", DurationMinutes: 30, Status: appointment.StatusScheduled},
			}, nil
		},
	}

	msg := LoadRange(repo, start, end)()

	loaded, ok := msg.(AppointmentsLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want AppointmentsLoadedMsg", msg)
	}
	if !gotStart.Equal(start) || !gotEnd.Equal(end) {
		t.Fatalf("queried %v..%v, want %v..%v", gotStart, gotEnd, start, end)
	}
	if len(loaded.Appointments) != 1 || loaded.Appointments[0].Client != "Ana" {
		t.Fatalf("appointments = %+v", loaded.Appointments)
	}
	if !loaded.Start.Equal(start) || !loaded.End.Equal(end) {
		t.Fatalf("range = %v..%v", loaded.Start, loaded.End)
	}
}

func TestLoadRangeReturnsErrMsg(t *testing.T) {
	boom := errors.New("disk on fire")
	repo := fakeRepo{
		listByRange: func(start, end time.Time) ([]*appointment.Appointment, error) {
			return nil, boom
		},
	}

	msg := LoadRange(repo, time.Now(), time.Now())()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, boom) {
		t.Fatalf("err = %v, want wrapped %v", errMsg.Err, boom)
	}
}

func TestNilRepoReturnsErrMsg(t *testing.T) {
	cmds := map[string]func() any{
		"load":   func() any { return LoadRange(nil, time.Now(), time.Now())() },
		"book":   func() any { return Book(nil, &appointment.Appointment{})() },
		"cancel": func() any { return Cancel(nil, 1)() },
	}
	for name, run := range cmds {
		t.Run(name, func(t *testing.T) {
			if _, ok := run().(ErrMsg); !ok {
				t.Fatal("expected ErrMsg for nil repository")
			}
		})
	}
}

func TestBook(t *testing.T) {
	repo := fakeRepo{
		create: func(a *appointment.Appointment) error {
			a.ID = 42
			return nil
		},
	}
	a := &appointment.Appointment{Client: "Luis", Start: "10:00", DurationMinutes: 30}

	msg := Book(repo, a)()
	booked, ok := msg.(BookedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want BookedMsg", msg)
	}
	if booked.Appointment.ID != 42 {
		t.Fatalf("ID = %d, want 42", booked.Appointment.ID)
	}
}

func TestBookSlotTaken(t *testing.T) {
	repo := fakeRepo{
		create: func(a *appointment.Appointment) error {
			return appointment.ErrSlotTaken
		},
	}

	msg := Book(repo, &appointment.Appointment{})()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, appointment.ErrSlotTaken) {
		t.Fatalf("err = %v, want ErrSlotTaken", errMsg.Err)
	}
}

func TestCancel(t *testing.T) {
	var cancelled int64
	repo := fakeRepo{
		cancel: func(id int64) error {
			cancelled = id
			return nil
		},
	}

	msg := Cancel(repo, 7)()
	if got, ok := msg.(CancelledMsg); !ok || got.ID != 7 {
		t.Fatalf("msg = %#v, want CancelledMsg{ID: 7}", msg)
	}
	if cancelled != 7 {
		t.Fatalf("repo cancelled %d, want 7", cancelled)
	}

	repo.cancel = func(id int64) error { return appointment.ErrNotScheduled }
	msg = Cancel(repo, 7)()
	if errMsg, ok := msg.(ErrMsg); !ok || !errors.Is(errMsg.Err, appointment.ErrNotScheduled) {
		t.Fatalf("msg = %#v, want ErrMsg wrapping ErrNotScheduled", msg)
	}
}

func TestCopy(t *testing.T) {
	// Headless machines have no clipboard; either outcome must be reported.
	switch msg := Copy("Hoy ·15 - 10:45 · Ana")().(type) {
	case StatusMsgCmd:
		if msg.Msg != "Copiado: Hoy ·15 - 10:45 · Ana" {
			t.Errorf("status = %q", msg.Msg)
		}
	case ErrMsg:
		if msg.Err == nil {
			t.Error("ErrMsg without error")
		}
	default:
		t.Fatalf("msg = %#v, want StatusMsgCmd or ErrMsg", msg)
	}
}
