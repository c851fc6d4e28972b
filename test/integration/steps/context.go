// Package steps contains the Godog step definitions for the API feature
// tests. Scenarios run against a real HTTP server wired through the
// production injector, backed by an in-memory SQLite database and an
// embedded Redis.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cardwise/backend/config"
	"github.com/cardwise/backend/internal/infra/dependency"
	"github.com/cardwise/backend/internal/integration/persistence/model"
	"github.com/cardwise/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	redis      *redis.Client
	serverPort int

	accessToken  string
	refreshToken string
	resetToken   string
	expiredToken string

	currentUserID uuid.UUID

	// Seeded catalogue cards and wallet entries, keyed by card name so
	// scenarios can reference several cards at once.
	cardIDs       map[string]int64
	walletCardIDs map[string]uuid.UUID

	currentCardID       int64
	currentWalletCardID uuid.UUID
	lastTransactionID   uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testRedis *redis.Client
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite runs once per suite.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		initializePort()
	})
}

// InitializeScenario wires the step definitions and resets state between
// scenarios.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		redis:      mock.NewRedis(),
		db: mock.NewDb("cardwise", map[string]any{
			"users":                 &model.UserModel{},
			"refresh_tokens":        &model.RefreshTokenModel{},
			"password_reset_tokens": &model.PasswordResetTokenModel{},
			"catalogue_cards":       &model.CatalogueCardModel{},
			"bonus_rules":           &model.BonusRuleModel{},
			"period_rules":          &model.PeriodRuleModel{},
			"period_rule_tiers":     &model.PeriodRuleTierModel{},
			"wallet_cards":          &model.WalletCardModel{},
			"card_transactions":     &model.CardTransactionModel{},
			"explanation_audits":    &model.ExplanationAuditModel{},
			"email_queue":           &model.EmailQueueModel{},
		}),
	}

	testDB = test.db
	testRedis = test.redis

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return nil, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^the user prefers "([^"]*)" rewards$`, test.theUserPrefersRewards)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)
	ctx.Given(`^an expired password reset token exists$`, test.anExpiredPasswordResetTokenExists)

	// Catalogue setup steps
	ctx.Given(`^a catalogue card "([^"]*)" from "([^"]*)" exists with benefit "([^"]*)" and base rate "([^"]*)"$`, test.aCatalogueCardExists)
	ctx.Given(`^the card "([^"]*)" has a bonus rule for "([^"]*)" at rate "([^"]*)" with cap (\d+) and min spend (\d+)$`, test.theCardHasABonusRule)
	ctx.Given(`^the card "([^"]*)" has a channel cap on "([^"]*)" of "([^"]*)" with bonus rate "([^"]*)" and spill rate "([^"]*)"$`, test.theCardHasAChannelCap)
	ctx.Given(`^the card "([^"]*)" has a tier rule requiring (\d+) transactions with levels:$`, test.theCardHasATierRule)
	ctx.Given(`^the card "([^"]*)" is marked "([^"]*)"$`, test.theCardIsMarked)

	// Wallet setup steps
	ctx.Given(`^the user's wallet contains the card "([^"]*)"$`, test.theUsersWalletContainsTheCard)
	ctx.Given(`^the wallet card for "([^"]*)" is "([^"]*)"$`, test.theWalletCardForIs)

	// Transaction setup steps
	ctx.Given(`^a transaction of "([^"]*)" on "([^"]*)" was logged this month on the card "([^"]*)"$`, test.aTransactionWasLoggedOnChannel)
	ctx.Given(`^a transaction of "([^"]*)" in category "([^"]*)" was logged this month on the card "([^"]*)"$`, test.aTransactionWasLoggedInCategory)
	ctx.Given(`^a transaction of "([^"]*)" dated "([^"]*)" was logged on the card "([^"]*)"$`, test.aTransactionWasLoggedOnDate)
	ctx.Given(`^(\d+) transactions of "([^"]*)" on "([^"]*)" were logged this month on the card "([^"]*)"$`, test.transactionsWereLoggedOnChannel)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) elements$`, test.theResponseFieldShouldHaveElements)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.expiredToken = ""
	t.currentUserID = uuid.Nil
	t.cardIDs = make(map[string]int64)
	t.walletCardIDs = make(map[string]uuid.UUID)
	t.currentCardID = 0
	t.currentWalletCardID = uuid.Nil
	t.lastTransactionID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	if t.redis != nil {
		_ = mock.ClearRedis(t.redis)
	}
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// The Gemini key is left empty so explanations take the
			// deterministic template path, and the email worker is never
			// started so queued emails stay in the queue table for
			// assertions.
			cfg := &config.Config{
				Server: config.ServerConfig{
					Host:        "127.0.0.1",
					Port:        testServerPort,
					Environment: "test",
				},
				Redis: config.RedisConfig{
					CatalogueTTL: time.Minute,
				},
				JWT: config.JWTConfig{
					Secret:             testJWTSecret,
					AccessTokenExpiry:  15 * time.Minute,
					RefreshTokenExpiry: 7 * 24 * time.Hour,
				},
				Gemini: config.GeminiConfig{
					APIKey: "",
					Model:  "gemini-2.5-flash-lite",
				},
				Email: config.EmailConfig{
					FromName:     "Cardwise",
					FromEmail:    "noreply@cardwise.test",
					AppBaseURL:   "http://localhost:3000",
					PollInterval: time.Second,
					BatchSize:    10,
				},
				Digest: config.DigestConfig{
					CheckInterval: time.Hour,
				},
			}

			injector, err := dependency.NewInjector(cfg, testDB.DbConn, testRedis)
			if err != nil {
				panic(fmt.Sprintf("failed to build test injector: %v", err))
			}

			engine := injector.Router.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}
