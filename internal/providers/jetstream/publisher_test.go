package jetstream_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-metadata-registry/internal/adapter"
	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/mocks"
	"github.com/feral-file/ff-metadata-registry/internal/providers/jetstream"
)

type testPublisherMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupTestPublisher(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func testEvent() *domain.MetadataEvent {
	return &domain.MetadataEvent{
		ID:          "01J9ZQ4B8Y3N5T6V7W8X9Y0Z1A",
		EventType:   domain.EventTypeMetadataRegistered,
		TokenID:     7,
		Sequence:    100,
		ContentHash: "abc",
		Timestamp:   time.Unix(1700000000, 0).UTC(),
	}
}

func TestNewPublisher_ConnectError(t *testing.T) {
	m := setupTestPublisher(t)
	defer m.ctrl.Finish()

	m.natsJS.EXPECT().
		Connect("nats://localhost:4222", gomock.Any()).
		Return(nil, nil, errors.New("connection refused"))

	p, err := jetstream.NewPublisher(jetstream.Config{URL: "nats://localhost:4222"}, m.natsJS, adapter.NewJSON())
	assert.Nil(t, p)
	assert.ErrorContains(t, err, "connection refused")
}

func TestPublisher_PublishEvent(t *testing.T) {
	tests := []struct {
		name            string
		prefix          string
		event           *domain.MetadataEvent
		expectedSubject string
	}{
		{
			name:            "registered with prefix",
			prefix:          "registry",
			event:           testEvent(),
			expectedSubject: "registry.metadata.registered",
		},
		{
			name:   "token uri set without prefix",
			prefix: "",
			event: &domain.MetadataEvent{
				ID:        "01J9ZQ4B8Y3N5T6V7W8X9Y0Z1B",
				EventType: domain.EventTypeTokenURISet,
				TokenID:   7,
				URI:       "ipfs://token/7",
			},
			expectedSubject: "token_uri.set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestPublisher(t)
			defer m.ctrl.Finish()

			m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)

			var published []byte
			m.js.EXPECT().
				Publish(gomock.Any(), tt.expectedSubject, gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, subject string, data []byte, opts ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
					published = data
					return &natsjs.PubAck{Stream: "METADATA", Sequence: 1}, nil
				})

			jsonAdapter := adapter.NewJSON()
			p, err := jetstream.NewPublisher(jetstream.Config{SubjectPrefix: tt.prefix}, m.natsJS, jsonAdapter)
			require.NoError(t, err)

			err = p.PublishEvent(context.Background(), tt.event)
			require.NoError(t, err)

			var decoded domain.MetadataEvent
			require.NoError(t, jsonAdapter.Unmarshal(published, &decoded))
			assert.Equal(t, tt.event.ID, decoded.ID)
			assert.Equal(t, tt.event.EventType, decoded.EventType)
			assert.Equal(t, tt.event.TokenID, decoded.TokenID)
		})
	}
}

func TestPublisher_PublishEvent_RetriesUntilSuccess(t *testing.T) {
	m := setupTestPublisher(t)
	defer m.ctrl.Finish()

	m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
	gomock.InOrder(
		m.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("no responders")),
		m.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&natsjs.PubAck{Stream: "METADATA", Sequence: 2}, nil),
	)

	p, err := jetstream.NewPublisher(jetstream.Config{
		SubjectPrefix:     "registry",
		PublishMaxElapsed: 5 * time.Second,
	}, m.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	assert.NoError(t, p.PublishEvent(context.Background(), testEvent()))
}

func TestPublisher_PublishEvent_NoRetryWhenDisabled(t *testing.T) {
	m := setupTestPublisher(t)
	defer m.ctrl.Finish()

	m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
	m.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("no responders")).
		Times(1)

	p, err := jetstream.NewPublisher(jetstream.Config{SubjectPrefix: "registry"}, m.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	err = p.PublishEvent(context.Background(), testEvent())
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestPublisher_PublishEvent_MarshalError(t *testing.T) {
	m := setupTestPublisher(t)
	defer m.ctrl.Finish()

	jsonMock := mocks.NewMockJSON(m.ctrl)
	m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
	jsonMock.EXPECT().Marshal(gomock.Any()).Return(nil, errors.New("boom"))

	p, err := jetstream.NewPublisher(jetstream.Config{}, m.natsJS, jsonMock)
	require.NoError(t, err)

	err = p.PublishEvent(context.Background(), testEvent())
	assert.ErrorContains(t, err, "failed to marshal event")
}

func TestPublisher_Close(t *testing.T) {
	m := setupTestPublisher(t)
	defer m.ctrl.Finish()

	m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
	m.conn.EXPECT().Close().Times(1)

	p, err := jetstream.NewPublisher(jetstream.Config{}, m.natsJS, adapter.NewJSON())
	require.NoError(t, err)
	p.Close()
}
