package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/sms"
)

type fakeResolver struct {
	info *GuardianInfo
	err  error
}

func (f *fakeResolver) InfantGuardian(ctx context.Context, infantID int64) (*GuardianInfo, error) {
	return f.info, f.err
}

type fakeLogStore struct {
	saved []*domain.NotificationLog
	err   error
}

func (f *fakeLogStore) Save(ctx context.Context, n *domain.NotificationLog) (int64, error) {
	f.saved = append(f.saved, n)
	return int64(len(f.saved)), f.err
}

type fakeRanker struct {
	ranked []domain.RankedAction
	err    error
}

func (f *fakeRanker) Rank(ctx context.Context, cause domain.CryType, minTrials int) ([]domain.RankedAction, error) {
	return f.ranked, f.err
}

type fakeTextGen struct {
	lastRanked []domain.RankedAction
}

func (f *fakeTextGen) ActionText(ctx context.Context, cause domain.CryType, infantName string, severity domain.Severity, ranked []domain.RankedAction) string {
	f.lastRanked = ranked
	return "차분히 안아주세요."
}

type fakeSender struct {
	calls  int
	lastTo string
	result *sms.SendResult
	err    error
}

func (f *fakeSender) Send(ctx context.Context, to, body string) (*sms.SendResult, error) {
	f.calls++
	f.lastTo = to
	return f.result, f.err
}

func testEvent() Event {
	return Event{EventID: 42, InfantID: 7, Cause: domain.CryHungry, Severity: domain.SeverityHigh}
}

func guardian(phone string) *GuardianInfo {
	return &GuardianInfo{InfantName: "하늘이", GuardianID: 3, Phone: phone}
}

func TestDispatchGuardianLookupFails(t *testing.T) {
	logs := &fakeLogStore{}
	sender := &fakeSender{}
	d := NewDispatcher(&fakeResolver{err: errors.New("infant 7 not found")}, logs, &fakeRanker{}, &fakeTextGen{}, sender, 2)

	status := d.Dispatch(context.Background(), testEvent())

	assert.Equal(t, domain.NotificationStatus(""), status)
	assert.Empty(t, logs.saved, "no audit row without a guardian to key it to")
	assert.Zero(t, sender.calls)
}

func TestDispatchNoPhone(t *testing.T) {
	logs := &fakeLogStore{}
	sender := &fakeSender{}
	d := NewDispatcher(&fakeResolver{info: guardian("")}, logs, &fakeRanker{}, &fakeTextGen{}, sender, 2)

	status := d.Dispatch(context.Background(), testEvent())

	assert.Equal(t, domain.NotificationNoPhone, status)
	assert.Zero(t, sender.calls, "provider must not be called without a phone")

	require.Len(t, logs.saved, 1)
	n := logs.saved[0]
	assert.Equal(t, int64(42), n.EventID)
	assert.Equal(t, int64(3), n.GuardianID)
	assert.Equal(t, domain.NotificationNoPhone, n.Status)
	assert.Equal(t, int64(0), n.LatencyMs)
	assert.Equal(t, "차분히 안아주세요.", n.ActionText)
}

func TestDispatchSent(t *testing.T) {
	logs := &fakeLogStore{}
	sender := &fakeSender{result: &sms.SendResult{Success: true, MessageID: "SM123"}}
	d := NewDispatcher(&fakeResolver{info: guardian("010-1234-5678")}, logs, &fakeRanker{}, &fakeTextGen{}, sender, 2)

	status := d.Dispatch(context.Background(), testEvent())

	assert.Equal(t, domain.NotificationSent, status)
	assert.Equal(t, "+821012345678", sender.lastTo)

	require.Len(t, logs.saved, 1)
	assert.Equal(t, domain.NotificationSent, logs.saved[0].Status)
	assert.Equal(t, "SM123", logs.saved[0].ProviderMsgID)
}

func TestDispatchProviderErrorMapping(t *testing.T) {
	tests := []struct {
		code int
		want domain.NotificationStatus
	}{
		{21608, domain.NotificationUnverifiedNumber},
		{21211, domain.NotificationInvalidNumber},
		{30007, domain.NotificationError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code %d", tt.code), func(t *testing.T) {
			logs := &fakeLogStore{}
			sender := &fakeSender{err: &sms.ProviderError{Code: tt.code, Message: "rejected"}}
			d := NewDispatcher(&fakeResolver{info: guardian("010-1234-5678")}, logs, &fakeRanker{}, &fakeTextGen{}, sender, 2)

			status := d.Dispatch(context.Background(), testEvent())

			assert.Equal(t, tt.want, status)
			require.Len(t, logs.saved, 1)
			assert.Equal(t, tt.want, logs.saved[0].Status)
			assert.Empty(t, logs.saved[0].ProviderMsgID)
		})
	}
}

func TestDispatchUnsuccessfulResult(t *testing.T) {
	logs := &fakeLogStore{}
	sender := &fakeSender{result: &sms.SendResult{Success: false}}
	d := NewDispatcher(&fakeResolver{info: guardian("010-1234-5678")}, logs, &fakeRanker{}, &fakeTextGen{}, sender, 2)

	status := d.Dispatch(context.Background(), testEvent())

	assert.Equal(t, domain.NotificationFailed, status)
	require.Len(t, logs.saved, 1)
}

func TestDispatchNilSender(t *testing.T) {
	logs := &fakeLogStore{}
	d := NewDispatcher(&fakeResolver{info: guardian("010-1234-5678")}, logs, &fakeRanker{}, &fakeTextGen{}, nil, 2)

	status := d.Dispatch(context.Background(), testEvent())

	assert.Equal(t, domain.NotificationError, status)
	require.Len(t, logs.saved, 1)
}

func TestDispatchRankFailureStillNotifies(t *testing.T) {
	logs := &fakeLogStore{}
	textGen := &fakeTextGen{lastRanked: []domain.RankedAction{{Detail: "sentinel"}}}
	sender := &fakeSender{result: &sms.SendResult{Success: true, MessageID: "SM1"}}
	d := NewDispatcher(&fakeResolver{info: guardian("010-1234-5678")}, logs, &fakeRanker{err: errors.New("db down")}, textGen, sender, 2)

	status := d.Dispatch(context.Background(), testEvent())

	assert.Equal(t, domain.NotificationSent, status)
	assert.Nil(t, textGen.lastRanked, "text generation must proceed without history")
}

func TestDispatchLogSaveFailureDoesNotChangeStatus(t *testing.T) {
	logs := &fakeLogStore{err: errors.New("insert failed")}
	sender := &fakeSender{result: &sms.SendResult{Success: true, MessageID: "SM1"}}
	d := NewDispatcher(&fakeResolver{info: guardian("010-1234-5678")}, logs, &fakeRanker{}, &fakeTextGen{}, sender, 2)

	status := d.Dispatch(context.Background(), testEvent())
	assert.Equal(t, domain.NotificationSent, status)
}

func TestBuildSMSBody(t *testing.T) {
	body := buildSMSBody("하늘이", domain.CryHungry, "분유를 먹여 보세요.")

	lines := strings.Split(body, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[알림] 아이(하늘이)가 지금 울고 있어요.", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "울음 원인 추정: "))
	assert.Equal(t, "추천 조치: 분유를 먹여 보세요.", lines[2])
}
