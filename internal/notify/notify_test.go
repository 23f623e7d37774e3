package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/evidenca/internal/model"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		event model.Event
		want  string
	}{
		{model.Event{Kind: model.EventStoreCreated, Location: "/tmp/a.sqlite3"}, "Store has been created @ /tmp/a.sqlite3."},
		{model.Event{Kind: model.EventStoreOpened, Location: "inv.sqlite3"}, "Store is open @ inv.sqlite3."},
		{model.Event{Kind: model.EventStoreClosed}, "Store is closed."},
		{
			model.Event{Kind: model.EventEntityCreated, Entity: model.EntityItemType, ID: 1, Name: "Laptop"},
			"Item type #1 is added with name 'Laptop'",
		},
		{
			model.Event{Kind: model.EventEntityRenamed, Entity: model.EntityPlace, ID: 2, Name: "Depot", OldName: "Warehouse"},
			"Place #2 changes name to 'Depot'",
		},
		{
			model.Event{Kind: model.EventEntityCreated, Entity: model.EntityItem, ID: 3, Name: "Dell-01", TypeName: "Laptop", PlaceName: "Warehouse"},
			"Item #3 of type 'Laptop' in place 'Warehouse' is added with name 'Dell-01'",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.event))
	}
}

func TestMultiAndRecorder(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, Discard, b}

	m.Notify(context.Background(), model.Event{Kind: model.EventStoreOpened})
	m.Notify(context.Background(), model.Event{Kind: model.EventStoreClosed})

	want := []model.EventKind{model.EventStoreOpened, model.EventStoreClosed}
	assert.Equal(t, want, a.Kinds())
	assert.Equal(t, want, b.Kinds())
	assert.Len(t, a.Events(), 2)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	sink.Notify(context.Background(), model.Event{
		Kind:    model.EventEntityRenamed,
		Entity:  model.EntityItemType,
		ID:      4,
		Name:    "Notebook",
		OldName: "Laptop",
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "entity.renamed", line["event"])
	assert.Equal(t, "item_type", line["entity"])
	assert.Equal(t, float64(4), line["id"])
	assert.Equal(t, "Laptop", line["old_name"])
	assert.Equal(t, "Item type #4 changes name to 'Notebook'", line["message"])
}

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message any) *goredis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	cmd := goredis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestRedisSinkPublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewRedisSink(pub, "evidenca.events", zerolog.Nop())

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sink.Notify(context.Background(), model.Event{
		Kind:    model.EventEntityCreated,
		StoreID: "abc",
		Entity:  model.EntityPlace,
		ID:      7,
		Name:    "Warehouse",
		At:      at,
	})

	assert.Equal(t, "evidenca.events", pub.channel)

	var got model.Event
	require.NoError(t, json.Unmarshal(pub.payload, &got))
	assert.Equal(t, model.EventEntityCreated, got.Kind)
	assert.Equal(t, "abc", got.StoreID)
	assert.Equal(t, int64(7), got.ID)
	assert.True(t, at.Equal(got.At))
}

func TestRedisSinkLogsPublishFailure(t *testing.T) {
	var buf bytes.Buffer
	pub := &fakePublisher{err: errors.New("connection refused")}
	sink := NewRedisSink(pub, "events", zerolog.New(&buf))

	sink.Notify(context.Background(), model.Event{Kind: model.EventStoreClosed})

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "connection refused")
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	sink.Notify(context.Background(), model.Event{Kind: model.EventStoreClosed})
	sink.Notify(context.Background(), model.Event{Kind: model.EventEntityRenamed, Entity: model.EntityPlace, ID: 2, Name: "Attic"})

	assert.Equal(t, "Store is closed.\nPlace #2 changes name to 'Attic'\n", buf.String())
}
