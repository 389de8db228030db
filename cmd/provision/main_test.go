package main

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
)

type fakePlatform struct {
	mu       sync.Mutex
	profile  *messenger.MessengerProfile
	menus    []string
	meErr    error
	menuErrs map[string]error
}

func (f *fakePlatform) Me(context.Context) (*messenger.PageInfo, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &messenger.PageInfo{ID: "page-1", Name: "Portfolio"}, nil
}

func (f *fakePlatform) SetMessengerProfile(_ context.Context, profile messenger.MessengerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = &profile
	return nil
}

func (f *fakePlatform) SetUserPersistentMenu(_ context.Context, psid string, _ []messenger.PersistentMenu) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.menuErrs[psid]; err != nil {
		return err
	}
	f.menus = append(f.menus, psid)
	return nil
}

func run(t *testing.T, fake *fakePlatform, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func() (Platform, error) { return fake, nil })
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWhoami(t *testing.T) {
	t.Parallel()
	out, err := run(t, &fakePlatform{}, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Portfolio (page-1)\n", out)
}

func TestWhoami_Error(t *testing.T) {
	t.Parallel()
	_, err := run(t, &fakePlatform{meErr: errors.New("invalid token")}, "whoami")
	require.EqualError(t, err, "invalid token")
}

func TestProfile(t *testing.T) {
	t.Parallel()
	fake := &fakePlatform{}
	out, err := run(t, fake, "profile", "--greeting", "Hello!")
	require.NoError(t, err)
	assert.Contains(t, out, "profile installed on Portfolio")

	require.NotNil(t, fake.profile)
	assert.Equal(t, "Hello!", fake.profile.Greeting[0].Text)
	assert.Equal(t, messenger.PayloadGetStarted, fake.profile.GetStarted.Payload)
}

func TestProfile_DefaultGreeting(t *testing.T) {
	t.Parallel()
	fake := &fakePlatform{}
	_, err := run(t, fake, "profile")
	require.NoError(t, err)
	assert.Equal(t, defaultGreeting, fake.profile.Greeting[0].Text)
}

func TestMenu(t *testing.T) {
	t.Parallel()
	fake := &fakePlatform{}
	out, err := run(t, fake, "menu", "--psid", "111", "--psid", "222, 333", "--psid", "111")
	require.NoError(t, err)
	assert.Equal(t, "menu installed for 3 user(s)\n", out)

	sort.Strings(fake.menus)
	assert.Equal(t, []string{"111", "222", "333"}, fake.menus)
}

func TestMenu_RequiresPSID(t *testing.T) {
	t.Parallel()
	_, err := run(t, &fakePlatform{}, "menu")
	require.Error(t, err)
}

func TestMenu_PartialFailure(t *testing.T) {
	t.Parallel()
	fake := &fakePlatform{menuErrs: map[string]error{"222": errors.New("no such user")}}
	_, err := run(t, fake, "menu", "--psid", "111,222")
	require.EqualError(t, err, "no such user")
}

func TestMenu_RejectsNonNumericPSID(t *testing.T) {
	t.Parallel()
	fake := &fakePlatform{}
	_, err := run(t, fake, "menu", "--psid", "123,abc")
	require.EqualError(t, err, "invalid psid(s): abc")
	assert.Empty(t, fake.menus)
}

func TestNormalizePSIDs(t *testing.T) {
	t.Parallel()
	got, err := normalizePSIDs([]string{" 1 ", "2", "", "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, got)

	_, err = normalizePSIDs([]string{" "})
	require.Error(t, err)
}
