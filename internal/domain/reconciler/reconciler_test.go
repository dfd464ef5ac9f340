package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/reconciler/mock"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const auditChannel = "111111111111111111"

type mocks struct {
	store      *mock.MockStore
	guilds     *mock.MockGuildLookup
	notifier   *mock.MockNotifier
	dispatcher *mock.MockDispatcher
	archiver   *mock.MockArchiver
}

func newTestReconciler(t *testing.T) (*Reconciler, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		store:      mock.NewMockStore(ctrl),
		guilds:     mock.NewMockGuildLookup(ctrl),
		notifier:   mock.NewMockNotifier(ctrl),
		dispatcher: mock.NewMockDispatcher(ctrl),
		archiver:   mock.NewMockArchiver(ctrl),
	}

	// Background tasks run inline so their effects are observable.
	m.dispatcher.EXPECT().Go(gomock.Any(), gomock.Any()).
		Do(func(_ string, fn func(context.Context) error) {
			_ = fn(context.Background())
		}).AnyTimes()

	r := New(m.store, m.guilds, m.notifier, m.dispatcher, Config{Concurrency: 4, AuditChannelID: auditChannel})
	r.now = func() time.Time { return fixedNow }
	r.newID = func() string { return "run-1" }
	return r, m
}

func expectWindow(m mocks, rows ...*models.RolePurchase) {
	m.store.EXPECT().FindExpiringBetween(gomock.Any(), fixedNow, fixedNow.Add(ReminderWindow)).Return(rows, nil)
}

func expectHistory(m mocks, rep *models.RolePurchase, siblings ...*models.RolePurchase) {
	m.store.EXPECT().FindByTriple(gomock.Any(), rep.DiscordUserID, rep.GuildID, rep.RoleID).
		Return(append([]*models.RolePurchase{rep}, siblings...), nil)
}

func expectDM(t *testing.T, m mocks, userID, contains string) *gomock.Call {
	return m.notifier.EXPECT().SendDirectMessage(gomock.Any(), userID, gomock.Any()).
		Do(func(_ context.Context, _ string, embed discord.Embed) {
			assert.Contains(t, embed.Description, contains)
		})
}

func TestReconciler_ThreeDayReminder(t *testing.T) {
	r, m := newTestReconciler(t)
	rep := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(72*time.Hour)))

	expectWindow(m, rep)
	expectHistory(m, rep)
	expectDM(t, m, rep.DiscordUserID, "expires in 3 days")

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.ThreeDayReminder)
	assert.Equal(t, 0, report.Expired)
}

func TestReconciler_OneDayReminder(t *testing.T) {
	r, m := newTestReconciler(t)
	rep := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(24*time.Hour+59*time.Minute)))

	expectWindow(m, rep)
	expectHistory(m, rep)
	expectDM(t, m, rep.DiscordUserID, "expires in 1 day")

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.OneDayReminder)
}

func TestReconciler_NoActionBetweenBoundaries(t *testing.T) {
	r, m := newTestReconciler(t)
	rep := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(50*time.Hour)))

	expectWindow(m, rep)
	expectHistory(m, rep)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.NoAction)
}

func TestReconciler_Expire(t *testing.T) {
	tests := []struct {
		name            string
		revokeErr       error
		notifyChannel   string
		wantDM          bool
		wantAuditPosts  int
		expectedOutcome func(*testing.T, *RunReport)
	}{
		{
			name:           "revoked with guild channel",
			notifyChannel:  "222222222222222222",
			wantDM:         true,
			wantAuditPosts: 2,
			expectedOutcome: func(t *testing.T, report *RunReport) {
				assert.Equal(t, 1, report.Expired)
			},
		},
		{
			name:           "revoked without guild channel",
			wantDM:         true,
			wantAuditPosts: 1,
			expectedOutcome: func(t *testing.T, report *RunReport) {
				assert.Equal(t, 1, report.Expired)
			},
		},
		{
			name:           "revoke fails but audit still sent",
			revokeErr:      errors.New("403 missing permissions"),
			notifyChannel:  "222222222222222222",
			wantDM:         false,
			wantAuditPosts: 2,
			expectedOutcome: func(t *testing.T, report *RunReport) {
				assert.Equal(t, 0, report.Expired)
				assert.Equal(t, 1, report.RevokeFailures)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, m := newTestReconciler(t)
			rep := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(30*time.Minute)))

			expectWindow(m, rep)
			expectHistory(m, rep)
			m.notifier.EXPECT().RevokeRole(gomock.Any(), "g1", rep.DiscordUserID, "r1").Return(tc.revokeErr)
			if tc.wantDM {
				expectDM(t, m, rep.DiscordUserID, "has expired")
			}
			m.guilds.EXPECT().GetByID(gomock.Any(), "g1").
				Return(&models.Guild{ID: "g1", NotificationChannelID: tc.notifyChannel}, nil)

			posted := map[string]discord.Embed{}
			m.notifier.EXPECT().SendChannelMessage(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, channelID string, embed discord.Embed) error {
					posted[channelID] = embed
					return nil
				}).Times(tc.wantAuditPosts)

			report, err := r.Run(context.Background())
			require.NoError(t, err)
			tc.expectedOutcome(t, report)

			require.Contains(t, posted, auditChannel)
			if tc.revokeErr != nil {
				assert.Contains(t, posted[auditChannel].Description, "403 missing permissions")
			}
			if tc.notifyChannel != "" {
				assert.Contains(t, posted, tc.notifyChannel)
			}
		})
	}
}

func TestReconciler_SkipsRenewedPurchase(t *testing.T) {
	r, m := newTestReconciler(t)
	rep := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(10*time.Minute)))
	renewal := purchase("p2", "123456789012345678", "g1", "r1", at(fixedNow.Add(10*24*time.Hour)))

	expectWindow(m, rep)
	expectHistory(m, rep, renewal)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.SkippedRenewals)
	assert.Equal(t, 0, report.Expired)
}

func TestReconciler_RenewalPropertyAcrossBoundaries(t *testing.T) {
	for _, offset := range []time.Duration{72 * time.Hour, 24 * time.Hour, 0} {
		t.Run(offset.String(), func(t *testing.T) {
			r, m := newTestReconciler(t)
			rep := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(offset+time.Minute)))
			later := purchase("p2", "123456789012345678", "g1", "r1", at(rep.ExpiresAt.Add(time.Second)))

			expectWindow(m, rep)
			expectHistory(m, rep, later)

			report, err := r.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, report.SkippedRenewals)
		})
	}
}

func TestReconciler_RowFailuresAreIsolated(t *testing.T) {
	r, m := newTestReconciler(t)
	broken := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(20*time.Minute)))
	healthy := purchase("p2", "223456789012345678", "g1", "r1", at(fixedNow.Add(40*time.Minute)))

	expectWindow(m, broken, healthy)
	m.store.EXPECT().FindByTriple(gomock.Any(), broken.DiscordUserID, "g1", "r1").
		Return(nil, errors.New("connection reset"))
	expectHistory(m, healthy)
	m.notifier.EXPECT().RevokeRole(gomock.Any(), "g1", healthy.DiscordUserID, "r1").Return(nil)
	expectDM(t, m, healthy.DiscordUserID, "has expired")
	m.guilds.EXPECT().GetByID(gomock.Any(), "g1").Return(&models.Guild{ID: "g1"}, nil)
	m.notifier.EXPECT().SendChannelMessage(gomock.Any(), auditChannel, gomock.Any()).Return(nil)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.RowErrors)
	assert.Equal(t, 1, report.Expired)
}

func TestReconciler_DuplicatesCollapse(t *testing.T) {
	r, m := newTestReconciler(t)
	first := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(72*time.Hour)))
	dup := purchase("p2", "123456789012345678", "g1", "r1", at(fixedNow.Add(72*time.Hour)))

	expectWindow(m, first, dup)
	expectHistory(m, first, dup)
	expectDM(t, m, first.DiscordUserID, "3 days").Times(1)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Candidates)
	assert.Equal(t, 1, report.Unique)
}

func TestReconciler_RunTwiceOnlyRepeatsSideEffects(t *testing.T) {
	r, m := newTestReconciler(t)
	rep := purchase("p1", "123456789012345678", "g1", "r1", at(fixedNow.Add(5*time.Minute)))

	m.store.EXPECT().FindExpiringBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.RolePurchase{rep}, nil).Times(2)
	m.store.EXPECT().FindByTriple(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.RolePurchase{rep}, nil).Times(2)
	m.notifier.EXPECT().RevokeRole(gomock.Any(), "g1", rep.DiscordUserID, "r1").Return(nil).Times(2)
	m.notifier.EXPECT().SendDirectMessage(gomock.Any(), rep.DiscordUserID, gomock.Any()).Times(2)
	m.guilds.EXPECT().GetByID(gomock.Any(), "g1").Return(&models.Guild{ID: "g1"}, nil).Times(2)
	m.notifier.EXPECT().SendChannelMessage(gomock.Any(), auditChannel, gomock.Any()).Return(nil).Times(2)

	for i := 0; i < 2; i++ {
		report, err := r.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Expired)
	}
}

func TestReconciler_QueryFailureAbortsPass(t *testing.T) {
	r, m := newTestReconciler(t)
	m.store.EXPECT().FindExpiringBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("relation does not exist"))

	report, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "relation does not exist")
	assert.Nil(t, report)
}

func TestReconciler_ArchivesReport(t *testing.T) {
	r, m := newTestReconciler(t)
	r.WithArchiver(m.archiver)

	expectWindow(m)
	m.archiver.EXPECT().Archive(gomock.Any(), "2026/03/01/run-1.json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, v any) (string, error) {
			report, ok := v.(*RunReport)
			require.True(t, ok)
			assert.Equal(t, "run-1", report.RunID)
			return "reconciler/2026/03/01/run-1.json", nil
		})

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reconciler/2026/03/01/run-1.json", report.ArchiveKey)
}

func TestReconciler_ArchiveFailureIsNotFatal(t *testing.T) {
	r, m := newTestReconciler(t)
	r.WithArchiver(m.archiver)

	expectWindow(m)
	m.archiver.EXPECT().Archive(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket missing"))

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.ArchiveKey)
}
