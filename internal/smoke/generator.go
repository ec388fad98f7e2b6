package smoke

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/valeko/scoreline/internal/domain/auth"
	"github.com/valeko/scoreline/internal/domain/rpc"
	"github.com/valeko/scoreline/pkg/logger"
)

const (
	percentDivisor = 100
	adminScore     = 42
)

var firstNames = []string{"ivan", "anna", "pavel", "olga", "sergei", "maria"}
var lastNames = []string{"smirnov", "petrova", "volkov", "koval", "orlova"}

func randomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

func pick(items []string) string {
	return items[randomInt(int64(len(items)))]
}

// generateCalls builds the request mix. Every call carries a correctly
// signed token; BadShare of them get payloads the service must reject,
// recorded with the code the envelope is expected to return.
func generateCalls(ctx context.Context, config *Config, stats *Stats) []Call {
	logger.Get().Info(ctx, "generating calls",
		logger.Int("count", config.NumCalls),
		logger.Int("adminShare", config.AdminShare),
		logger.Int("badShare", config.BadShare))

	a := auth.New(auth.WithSalt(config.Salt), auth.WithAdminSalt(config.AdminSalt))

	calls := make([]Call, config.NumCalls)
	for i := range calls {
		admin := randomInt(percentDivisor) < int64(config.AdminShare)
		broken := randomInt(percentDivisor) < int64(config.BadShare)
		if randomInt(2) == 0 {
			calls[i] = scoreCall(a, admin, broken)
		} else {
			calls[i] = interestsCall(a, admin, broken)
		}
	}

	stats.Generated = len(calls)
	return calls
}

func envelope(a *auth.Authenticator, admin bool, method string, args map[string]any) (map[string]any, bool) {
	account := "smoke_" + uuid.NewString()[:8]
	login := "smoke_user"
	token := a.UserDigest(account, login)
	if admin {
		login = auth.AdminLogin
		token = a.AdminDigest()
	}
	return map[string]any{
		"account":   account,
		"login":     login,
		"token":     token,
		"arguments": args,
		"method":    method,
	}, admin
}

func scoreCall(a *auth.Authenticator, admin, broken bool) Call {
	args := map[string]any{
		"phone":      "7" + fmt.Sprintf("%010d", randomInt(10_000_000_000)),
		"email":      pick(firstNames) + "@example.com",
		"first_name": pick(firstNames),
		"last_name":  pick(lastNames),
	}
	expected := rpc.StatusOK
	if broken {
		// Drops every pairing the cross check accepts.
		args = map[string]any{"first_name": pick(firstNames)}
		expected = rpc.StatusInvalidRequest
	}

	body, isAdmin := envelope(a, admin, rpc.MethodOnlineScore, args)
	call := Call{
		Body:          body,
		Method:        rpc.MethodOnlineScore,
		Admin:         isAdmin,
		ExpectedCode:  expected,
		ExpectedScore: -1,
	}
	if isAdmin && expected == rpc.StatusOK {
		call.ExpectedScore = adminScore
	}
	return call
}

func interestsCall(a *auth.Authenticator, admin, broken bool) Call {
	args := map[string]any{
		"client_ids": []any{randomInt(1000), randomInt(1000)},
		"date":       time.Now().Format("02.01.2006"),
	}
	expected := rpc.StatusOK
	if broken {
		args["client_ids"] = []any{"not", "numbers"}
		expected = rpc.StatusInvalidRequest
	}

	body, isAdmin := envelope(a, admin, rpc.MethodClientsInterests, args)
	return Call{
		Body:          body,
		Method:        rpc.MethodClientsInterests,
		Admin:         isAdmin,
		ExpectedCode:  expected,
		ExpectedScore: -1,
	}
}
