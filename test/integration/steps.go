package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cucumber/godog"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/server/endpoints"
	"github.com/ciphermind/ciphermind/pkg/vault"
)

// StepsContext holds state shared between step definitions within one
// scenario. The database behind the server persists across scenarios.
type StepsContext struct {
	tc           *TestContext
	lastStatus   int
	lastBody     []byte
	authToken    string
	rotatedValue string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I register user "([^"]*)" with password "([^"]*)" and role "([^"]*)"$`, s.iRegisterUser)
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^I log in with bad credentials as "([^"]*)" with password "([^"]*)"$`, s.iLogInExpectingFailure)

	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)

	sc.Step(`^I store the value "([^"]*)" in secret "([^"]*)"$`, s.iStoreValueInSecret)
	sc.Step(`^I list the secrets$`, s.iListTheSecrets)
	sc.Step(`^the secret list should contain "([^"]*)" owned by "([^"]*)"$`, s.theSecretListShouldContain)
	sc.Step(`^I read the secret "([^"]*)"$`, s.iReadTheSecret)
	sc.Step(`^the secret value should be "([^"]*)"$`, s.theSecretValueShouldBe)
	sc.Step(`^the secret value should not be "([^"]*)"$`, s.theSecretValueShouldNotBe)
	sc.Step(`^I rotate the secret "([^"]*)"$`, s.iRotateTheSecret)
	sc.Step(`^the secret value should match the last rotated value$`, s.theSecretValueShouldMatchRotated)

	sc.Step(`^I list the audit trail$`, s.iListTheAuditTrail)
	sc.Step(`^the audit trail should contain action "([^"]*)" targeting "([^"]*)"$`, s.theAuditTrailShouldContain)
}

func (s *StepsContext) do(method, path string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, s.tc.BaseURL+path, body)
	if err != nil {
		return err
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.tc.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.lastStatus = resp.StatusCode
	s.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) iRegisterUser(username, password, role string) error {
	return s.do(http.MethodPost, "/register", endpoints.RegisterRequest{
		Username: username,
		Password: password,
		Role:     model.Role(role),
	})
}

func (s *StepsContext) iLogInAs(username, password string) error {
	if err := s.do(http.MethodPost, "/login", endpoints.LoginRequest{Username: username, Password: password}); err != nil {
		return err
	}
	if s.lastStatus != http.StatusOK {
		return fmt.Errorf("login as %q failed with status %d: %s", username, s.lastStatus, s.lastBody)
	}

	var resp endpoints.LoginResponse
	if err := json.Unmarshal(s.lastBody, &resp); err != nil {
		return err
	}
	s.authToken = resp.Token
	return nil
}

func (s *StepsContext) iLogInExpectingFailure(username, password string) error {
	return s.do(http.MethodPost, "/login", endpoints.LoginRequest{Username: username, Password: password})
}

func (s *StepsContext) theResponseStatusShouldBe(expected int) error {
	if s.lastStatus != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, s.lastStatus, s.lastBody)
	}
	return nil
}

func (s *StepsContext) iStoreValueInSecret(value, name string) error {
	return s.do(http.MethodPost, "/secrets", endpoints.StoreSecretRequest{Name: name, Value: value})
}

func (s *StepsContext) iListTheSecrets() error {
	return s.do(http.MethodGet, "/secrets", nil)
}

func (s *StepsContext) theSecretListShouldContain(name, owner string) error {
	var infos []vault.SecretInfo
	if err := json.Unmarshal(s.lastBody, &infos); err != nil {
		return err
	}
	for _, info := range infos {
		if info.Name == name && info.Owner == owner {
			return nil
		}
	}
	return fmt.Errorf("secret %q owned by %q not in listing: %s", name, owner, s.lastBody)
}

func (s *StepsContext) iReadTheSecret(name string) error {
	return s.do(http.MethodGet, "/secrets/"+url.PathEscape(name), nil)
}

func (s *StepsContext) secretValue() (string, error) {
	var resp endpoints.SecretResponse
	if err := json.Unmarshal(s.lastBody, &resp); err != nil {
		return "", fmt.Errorf("response is not a secret: %s", s.lastBody)
	}
	return resp.Value, nil
}

func (s *StepsContext) theSecretValueShouldBe(expected string) error {
	value, err := s.secretValue()
	if err != nil {
		return err
	}
	if value != expected {
		return fmt.Errorf("expected secret value %q, got %q", expected, value)
	}
	return nil
}

func (s *StepsContext) theSecretValueShouldNotBe(unexpected string) error {
	value, err := s.secretValue()
	if err != nil {
		return err
	}
	if value == unexpected {
		return fmt.Errorf("secret value was not replaced, still %q", value)
	}
	return nil
}

func (s *StepsContext) iRotateTheSecret(name string) error {
	if err := s.do(http.MethodPost, "/secrets/"+url.PathEscape(name)+"/rotate", nil); err != nil {
		return err
	}
	if s.lastStatus == http.StatusOK {
		value, err := s.secretValue()
		if err != nil {
			return err
		}
		s.rotatedValue = value
	}
	return nil
}

func (s *StepsContext) theSecretValueShouldMatchRotated() error {
	if s.rotatedValue == "" {
		return fmt.Errorf("no rotation happened in this scenario")
	}
	return s.theSecretValueShouldBe(s.rotatedValue)
}

func (s *StepsContext) iListTheAuditTrail() error {
	return s.do(http.MethodGet, "/audit", nil)
}

func (s *StepsContext) theAuditTrailShouldContain(action, target string) error {
	var events []model.AuditEvent
	if err := json.Unmarshal(s.lastBody, &events); err != nil {
		return fmt.Errorf("response is not an audit listing: %s", s.lastBody)
	}
	for _, event := range events {
		if event.Action == model.Action(action) && event.Target == target {
			return nil
		}
	}
	return fmt.Errorf("no %s event targeting %q in the trail", action, target)
}
