package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"game-tracker/core/upstream"
	"game-tracker/feature/library/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestSteamFetchLibrary(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/IPlayerService/GetOwnedGames/v1/", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		assert.Equal(t, "7656", r.URL.Query().Get("steamid"))
		assert.Equal(t, "1", r.URL.Query().Get("include_appinfo"))
		fmt.Fprint(w, `{"response":{"game_count":2,"games":[
			{"appid":730,"name":"Counter-Strike 2","playtime_forever":1200,"img_icon_url":"ic"},
			{"appid":413150,"name":"Stardew Valley","playtime_forever":0}
		]}}`)
	})

	s := NewSteam(Config{SteamAPIURL: srv.URL, SteamAPIKey: "k"}, srv.Client(), zap.NewNop())
	games, err := s.FetchLibrary(context.Background(), Credential{AccountID: "7656"})
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "730", games[0].ExternalID)
	assert.Equal(t, 1200, games[0].PlaytimeMinutes)
	assert.Contains(t, games[0].Images.IconURL, "/apps/730/ic.jpg")
	assert.Equal(t, "413150", games[1].ExternalID)
}

func TestSteamFetchLibrary_MissingAccount(t *testing.T) {
	s := NewSteam(Config{}, http.DefaultClient, zap.NewNop())
	_, err := s.FetchLibrary(context.Background(), Credential{})
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSteamFetchLibrary_Upstream5xx(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	s := NewSteam(Config{SteamAPIURL: srv.URL}, srv.Client(), zap.NewNop())
	_, err := s.FetchLibrary(context.Background(), Credential{AccountID: "1"})

	var ue *upstream.Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 502, ue.Status)
	assert.True(t, ue.Retryable)
}

func TestSteamFetchWishlist_PagesUntilEmpty(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wishlist/profiles/7656/wishlistdata/", r.URL.Path)
		switch r.URL.Query().Get("p") {
		case "0":
			fmt.Fprint(w, `{"1145360":{"name":"Hades","capsule":"c1"},"620":{"name":"Portal 2","capsule":"c2"}}`)
		case "1":
			fmt.Fprint(w, `{"1091500":{"name":"Cyberpunk 2077"}}`)
		default:
			fmt.Fprint(w, `[]`)
		}
	})

	s := NewSteam(Config{SteamStoreURL: srv.URL}, srv.Client(), zap.NewNop())
	games, err := s.FetchWishlist(context.Background(), Credential{AccountID: "7656"})
	require.NoError(t, err)
	require.Len(t, games, 3)

	assert.Equal(t, "620", games[0].ExternalID)
	assert.Equal(t, "c2", games[0].Images.CoverURL)
	assert.Equal(t, "1145360", games[1].ExternalID)
	assert.Equal(t, "1091500", games[2].ExternalID)
}

func TestSteamFetchWishlist_PartialOnLaterPageFailure(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") == "0" {
			fmt.Fprint(w, `{"620":{"name":"Portal 2"}}`)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	s := NewSteam(Config{SteamStoreURL: srv.URL}, srv.Client(), zap.NewNop())
	games, err := s.FetchWishlist(context.Background(), Credential{AccountID: "1"})
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestSteamFetchWishlist_StopsOnRepeatedPage(t *testing.T) {
	var requests atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"620":{"name":"Portal 2"},"400":{"name":"Portal"}}`)
	})

	s := NewSteam(Config{SteamStoreURL: srv.URL}, srv.Client(), zap.NewNop())
	games, err := s.FetchWishlist(context.Background(), Credential{AccountID: "1"})
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.Equal(t, int32(2), requests.Load())
}

func TestSteamFetchWishlist_FirstPageFailure(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	s := NewSteam(Config{SteamStoreURL: srv.URL}, srv.Client(), zap.NewNop())
	_, err := s.FetchWishlist(context.Background(), Credential{AccountID: "1"})
	require.Error(t, err)
	assert.False(t, upstream.IsRetryable(err))
}

func TestPSNFetchLibrary_Paging(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		switch r.URL.Query().Get("offset") {
		case "0":
			fmt.Fprint(w, `{"titles":[
				{"titleId":"PPSA01","name":"Returnal","playDuration":"PT12H30M10S","imageUrl":"i1"},
				{"titleId":"CUSA02","name":"Bloodborne","playDuration":"P1DT1H"}
			],"nextOffset":2,"totalItemCount":3}`)
		case "2":
			fmt.Fprint(w, `{"titles":[{"titleId":"PPSA03","name":"Astro Bot","playDuration":""}],"totalItemCount":3}`)
		default:
			t.Errorf("unexpected offset %s", r.URL.Query().Get("offset"))
		}
	})

	p := NewPSN(Config{PSNAPIURL: srv.URL, PSNPageSize: 2}, srv.Client(), zap.NewNop())
	games, err := p.FetchLibrary(context.Background(), Credential{AccessToken: "tok"})
	require.NoError(t, err)
	require.Len(t, games, 3)

	assert.Equal(t, 750, games[0].PlaytimeMinutes)
	assert.Equal(t, "i1", games[0].Images.CoverURL)
	assert.Equal(t, 25*60, games[1].PlaytimeMinutes)
	assert.Equal(t, 0, games[2].PlaytimeMinutes)
}

func TestPSNFetchLibrary_StopsWhenOffsetStalls(t *testing.T) {
	var requests atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"titles":[{"titleId":"PPSA01","name":"Returnal"}],"nextOffset":0}`)
	})

	p := NewPSN(Config{PSNAPIURL: srv.URL}, srv.Client(), zap.NewNop())
	games, err := p.FetchLibrary(context.Background(), Credential{AccessToken: "tok"})
	require.NoError(t, err)
	assert.Len(t, games, 1)
	assert.Equal(t, int32(1), requests.Load())
}

func TestPSNFetchLibrary_PartialAndFatal(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "0" {
			fmt.Fprint(w, `{"titles":[{"titleId":"A","name":"A"}],"nextOffset":1,"totalItemCount":5}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	p := NewPSN(Config{PSNAPIURL: srv.URL}, srv.Client(), zap.NewNop())
	games, err := p.FetchLibrary(context.Background(), Credential{AccessToken: "tok"})
	require.NoError(t, err)
	assert.Len(t, games, 1)

	failing := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	p = NewPSN(Config{PSNAPIURL: failing.URL}, failing.Client(), zap.NewNop())
	_, err = p.FetchLibrary(context.Background(), Credential{AccessToken: "tok"})
	require.Error(t, err)
}

func TestXboxFetchLibrary(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/xuid(2535)/titles/titlehistory/decoration/detail,image", r.URL.Path)
		assert.Equal(t, "XBL3.0 x=1;t", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.Header.Get("x-xbl-contract-version"))
		fmt.Fprint(w, `{"titles":[
			{"titleId":"219630713","name":"Halo Infinite","type":"Game","displayImage":"img"},
			{"titleId":12345,"name":"Forza Horizon 5","type":"Game"},
			{"titleId":"1","name":"Netflix","type":"App"}
		]}`)
	})

	x := NewXbox(Config{XboxAPIURL: srv.URL}, srv.Client(), zap.NewNop())
	games, err := x.FetchLibrary(context.Background(), Credential{AccountID: "2535", AccessToken: "XBL3.0 x=1;t"})
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "219630713", games[0].ExternalID)
	assert.Equal(t, "img", games[0].Images.CoverURL)
	assert.Equal(t, "12345", games[1].ExternalID)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(Config{}, zap.NewNop(), nil)
	for _, p := range models.Platforms {
		s, err := r.Get(p)
		require.NoError(t, err)
		assert.Equal(t, p, s.Platform())
	}

	s, _ := r.Get(models.PlatformSteam)
	_, ok := s.(WishlistSource)
	assert.True(t, ok)

	_, err := r.Get("gog")
	assert.ErrorIs(t, err, models.ErrUnknownPlatform)
}

func TestParseISODurationMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"PT0S", 0, false},
		{"PT59S", 0, false},
		{"PT1M", 1, false},
		{"PT2H3M", 123, false},
		{"PT12H34M56S", 754, false},
		{"P2D", 2880, false},
		{"P1DT2H", 1560, false},
		{"PT1.5H", 90, false},
		{"12H", 0, true},
		{"PTH", 0, true},
		{"PT5", 0, true},
		{"PT3X", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseISODurationMinutes(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
