//go:build integration

package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/lifescope/backend/test/integration/mock"
)

var errNoResponse = errors.New("no request has been sent yet")

// object returns the last response body as a JSON object.
func (t *testContext) object() (map[string]any, error) {
	if t.response == nil {
		return nil, errNoResponse
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T: %s", t.response.body, t.response.raw)
	}
	return body, nil
}

func (t *testContext) theResponseStatusShouldBe(want int) error {
	if t.response == nil {
		return errNoResponse
	}
	if t.response.status != want {
		return fmt.Errorf("status %d, want %d: %s", t.response.status, want, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.object()
	return err
}

func (t *testContext) theResponseShouldContain(key string) error {
	body, err := t.object()
	if err != nil {
		return err
	}
	if _, ok := body[key]; !ok {
		return fmt.Errorf("key %q missing from %s", key, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldInclude(text string) error {
	if t.response == nil {
		return errNoResponse
	}
	if !strings.Contains(t.response.raw, text) {
		return fmt.Errorf("%q not found in %s", text, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(path, want string) error {
	value, err := t.field(path)
	if err != nil {
		return err
	}
	want = t.replacePlaceholders(want)
	if got := fmt.Sprint(value); got != want {
		return fmt.Errorf("%s is %q, want %q", path, got, want)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(path string) error {
	_, err := t.field(path)
	return err
}

func (t *testContext) theResponseFieldShouldHaveItems(path string, count int) error {
	value, err := t.field(path)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%s is %T, not a list", path, value)
	}
	if len(items) != count {
		return fmt.Errorf("%s has %d items, want %d", path, len(items), count)
	}
	return nil
}

func (t *testContext) field(path string) (any, error) {
	body, err := t.object()
	if err != nil {
		return nil, err
	}
	value := lookupPath(body, path)
	if value == nil {
		return nil, fmt.Errorf("%s not set in %s", path, t.response.raw)
	}
	return value, nil
}

func (t *testContext) theAIProviderShouldHaveReceivedRequests(count int) error {
	if got := len(t.aiMock.Requests()); got != count {
		return fmt.Errorf("AI provider saw %d requests, want %d", got, count)
	}
	return nil
}

func (t *testContext) theLastAIRequestShouldMention(text string) error {
	requests := t.aiMock.Requests()
	if len(requests) == 0 {
		return errors.New("the AI provider received no requests")
	}
	if transcript := mock.Transcript(requests[len(requests)-1]); !strings.Contains(transcript, text) {
		return fmt.Errorf("last AI request does not mention %q: %s", text, transcript)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.expectRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return fmt.Errorf("criteria: %w", err)
	}
	return t.expectRows(quantity, table, criteria)
}

// expectRows counts rows of a registered table, soft-deleted ones included.
func (t *testContext) expectRows(want int, table string, criteria map[string]any) error {
	m, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("no model registered for table %q", table)
	}
	query := t.db.DbConn.Unscoped().Model(m)
	for column, value := range criteria {
		query = query.Where(column+" = ?", value)
	}
	var got int64
	if err := query.Count(&got).Error; err != nil {
		return err
	}
	if got != int64(want) {
		return fmt.Errorf("%s has %d matching rows, want %d (criteria %v)", table, got, want, criteria)
	}
	return nil
}

// lookupPath walks a dotted path such as "goal.activities.0.name" through
// decoded JSON. Numeric segments index lists.
func lookupPath(value any, path string) any {
	for _, segment := range strings.Split(path, ".") {
		switch node := value.(type) {
		case map[string]any:
			value = node[segment]
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			value = node[i]
		default:
			return nil
		}
	}
	return value
}
