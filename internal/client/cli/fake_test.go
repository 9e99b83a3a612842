package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/dmitrijs2005/findreve/internal/client/client"
	"github.com/dmitrijs2005/findreve/internal/client/markdown"
	"github.com/dmitrijs2005/findreve/internal/client/models"
	"github.com/dmitrijs2005/findreve/internal/client/tokeninfo"
)

var _ client.Client = (*fakeClient)(nil)

type fakeClient struct {
	calls []string

	loginUser, loginPass string
	loginRes             models.Result
	isLogin              bool
	session              tokeninfo.Info
	sessionOK            bool
	onLogout             func()

	itemRes  models.Result
	itemsRes models.Result
	addArgs  []string
	patch    models.ItemPatch
	about    string
	aboutErr error
	object   models.Result
	lastID   string
	lastKey  string
}

func (f *fakeClient) Login(_ context.Context, username, password string) models.Result {
	f.calls = append(f.calls, "login")
	f.loginUser, f.loginPass = username, password
	return f.loginRes
}

func (f *fakeClient) IsLogin(context.Context) bool {
	f.calls = append(f.calls, "isLogin")
	return f.isLogin
}

func (f *fakeClient) Logout(context.Context) {
	f.calls = append(f.calls, "logout")
	if f.onLogout != nil {
		f.onLogout()
	}
}

func (f *fakeClient) Session(context.Context) (tokeninfo.Info, bool) {
	f.calls = append(f.calls, "session")
	return f.session, f.sessionOK
}

func (f *fakeClient) GetItem(_ context.Context, id string) models.Result {
	f.calls = append(f.calls, "getItem")
	f.lastID = id
	return f.itemRes
}

func (f *fakeClient) GetItems(context.Context) models.Result {
	f.calls = append(f.calls, "getItems")
	return f.itemsRes
}

func (f *fakeClient) AddItems(_ context.Context, key, name, icon, phone string) models.Result {
	f.calls = append(f.calls, "addItems")
	f.addArgs = []string{key, name, icon, phone}
	return f.itemRes
}

func (f *fakeClient) UpdateItems(_ context.Context, patch models.ItemPatch) models.Result {
	f.calls = append(f.calls, "updateItems")
	f.patch = patch
	return f.itemRes
}

func (f *fakeClient) DeleteItem(_ context.Context, id string) models.Result {
	f.calls = append(f.calls, "deleteItem")
	f.lastID = id
	return f.itemRes
}

func (f *fakeClient) GetAbout(context.Context) string {
	f.calls = append(f.calls, "getAbout")
	return f.about
}

func (f *fakeClient) FetchAbout(context.Context) (string, error) {
	f.calls = append(f.calls, "fetchAbout")
	if f.aboutErr != nil {
		return "", f.aboutErr
	}
	return f.about, nil
}

func (f *fakeClient) GetObject(_ context.Context, key string) models.Result {
	f.calls = append(f.calls, "getObject")
	f.lastKey = key
	return f.object
}

func newReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

// newTestApp wires an App around f with the given stdin and captures stdout.
func newTestApp(f *fakeClient, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	a := &App{
		api:    f,
		readme: markdown.New("http://findreve.test/static/readme.md"),
		reader: newReader(input),
		out:    &out,
	}
	f.onLogout = a.onLogout
	return a, &out
}
