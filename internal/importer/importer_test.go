package importer_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-metadata-registry/internal/adapter"
	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/identity"
	"github.com/feral-file/ff-metadata-registry/internal/importer"
	"github.com/feral-file/ff-metadata-registry/internal/messaging"
	"github.com/feral-file/ff-metadata-registry/internal/metadata"
	"github.com/feral-file/ff-metadata-registry/internal/mocks"
	"github.com/feral-file/ff-metadata-registry/internal/store"
)

const (
	recordsFile  = "/data/records.json"
	ownerAddress = "0x396343362be2a4da1ce0c1c210945346fb82aa49"
)

// recordsJSON builds a JSON array of n valid records with token ids 1..n
func recordsJSON(n int) []byte {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, fmt.Sprintf(
			`{"token_id":%d,"name":"Token %d","description":"Description %d","image_uri":"ipfs://img/%d","attributes":[{"trait_type":"Edition","value":"%d"}]}`,
			i, i, i, i, i))
	}
	return []byte("[" + strings.Join(items, ",") + "]")
}

func TestImporter_Import_Batches(t *testing.T) {
	tests := []struct {
		name        string
		records     int
		batchSize   int
		expected    []int // sizes of the submitted batches
		expectedRes importer.Result
	}{
		{
			name:        "empty file",
			records:     0,
			batchSize:   10,
			expected:    nil,
			expectedRes: importer.Result{},
		},
		{
			name:        "exact multiple",
			records:     20,
			batchSize:   10,
			expected:    []int{10, 10},
			expectedRes: importer.Result{Records: 20, Batches: 2, CompletedBatches: 2},
		},
		{
			name:        "trailing partial batch",
			records:     23,
			batchSize:   10,
			expected:    []int{10, 10, 3},
			expectedRes: importer.Result{Records: 23, Batches: 3, CompletedBatches: 3},
		},
		{
			name:        "batch size above bulk limit is clamped",
			records:     60,
			batchSize:   500,
			expected:    []int{50, 10},
			expectedRes: importer.Result{Records: 60, Batches: 2, CompletedBatches: 2},
		},
		{
			name:        "zero batch size uses bulk limit",
			records:     5,
			batchSize:   0,
			expected:    []int{5},
			expectedRes: importer.Result{Records: 5, Batches: 1, CompletedBatches: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockRegistry := mocks.NewMockRegistry(ctrl)

			mockFS.EXPECT().ReadFile(recordsFile).Return(recordsJSON(tt.records), nil)

			var sizes []int
			nextID := domain.TokenID(1)
			mockRegistry.EXPECT().
				BulkRegister(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, inputs []domain.MetadataInput) error {
					// batches keep file order
					for _, in := range inputs {
						assert.Equal(t, nextID, in.TokenID)
						nextID++
					}
					sizes = append(sizes, len(inputs))
					return nil
				}).
				Times(len(tt.expected))

			imp := importer.NewImporter(mockRegistry, mockFS, adapter.NewJSON(), tt.batchSize)
			res, err := imp.Import(context.Background(), recordsFile)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, sizes)
			assert.Equal(t, tt.expectedRes, res)
		})
	}
}

func TestImporter_Import_StopsAtFailingBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockRegistry := mocks.NewMockRegistry(ctrl)

	mockFS.EXPECT().ReadFile(recordsFile).Return(recordsJSON(30), nil)

	gomock.InOrder(
		mockRegistry.EXPECT().BulkRegister(gomock.Any(), gomock.Len(10)).Return(nil),
		mockRegistry.EXPECT().BulkRegister(gomock.Any(), gomock.Len(10)).Return(domain.ErrInvalidStringLength),
	)

	imp := importer.NewImporter(mockRegistry, mockFS, adapter.NewJSON(), 10)
	res, err := imp.Import(context.Background(), recordsFile)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidStringLength)
	assert.Contains(t, err.Error(), "batch 1")
	assert.Equal(t, importer.Result{Records: 30, Batches: 3, CompletedBatches: 1}, res)
}

func TestImporter_Import_ReadAndParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		readErr  error
		expected string
	}{
		{
			name:     "read error",
			readErr:  errors.New("no such file"),
			expected: "failed to read records file",
		},
		{
			name:     "invalid JSON",
			data:     []byte(`{"token_id": 1}`),
			expected: "failed to parse records JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockRegistry := mocks.NewMockRegistry(ctrl)

			mockFS.EXPECT().ReadFile(recordsFile).Return(tt.data, tt.readErr)

			imp := importer.NewImporter(mockRegistry, mockFS, adapter.NewJSON(), 10)
			res, err := imp.Import(context.Background(), recordsFile)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
			assert.Equal(t, importer.Result{}, res)
		})
	}
}

func TestImporter_Import_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockRegistry := mocks.NewMockRegistry(ctrl)

	mockFS.EXPECT().ReadFile(recordsFile).Return(recordsJSON(3), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imp := importer.NewImporter(mockRegistry, mockFS, adapter.NewJSON(), 10)
	res, err := imp.Import(ctx, recordsFile)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.CompletedBatches)
}

func TestImporter_Import_WithRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider, err := identity.NewProvider(ownerAddress)
	require.NoError(t, err)

	reg := metadata.NewRegistry(
		store.NewMemoryStore(),
		provider,
		adapter.NewCounterSequencer(0),
		messaging.NewNoopPublisher(),
		adapter.NewJSON(),
		adapter.NewJCS(),
		adapter.NewClock(),
		metadata.Config{},
	)
	ctx := identity.WithCaller(context.Background(), provider.Owner())

	// token 7 is already registered, so the first batch fails half way
	require.NoError(t, reg.Register(ctx, domain.MetadataInput{TokenID: 7, Name: "Existing", Description: "Registered before import", ImageURI: "ipfs://existing"}))

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockFS.EXPECT().ReadFile(recordsFile).Return(recordsJSON(12), nil)

	imp := importer.NewImporter(reg, mockFS, adapter.NewJSON(), 10)
	res, err := imp.Import(ctx, recordsFile)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, importer.Result{Records: 12, Batches: 2, CompletedBatches: 0}, res)

	// records before the failing one stay registered, later ones were never submitted
	records, err := reg.List(ctx, 0, 100)
	require.NoError(t, err)
	ids := make([]domain.TokenID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.TokenID)
	}
	assert.Equal(t, []domain.TokenID{1, 2, 3, 4, 5, 6, 7}, ids)

	existing, err := reg.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, "Existing", existing.Name)
}

func TestImporter_Import_PublishesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider, err := identity.NewProvider(ownerAddress)
	require.NoError(t, err)

	mockPublisher := mocks.NewMockPublisher(ctrl)
	var published []domain.TokenID
	mockPublisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.MetadataEvent) error {
			assert.Equal(t, domain.EventTypeMetadataRegistered, event.EventType)
			published = append(published, event.TokenID)
			return nil
		}).
		Times(12)

	reg := metadata.NewRegistry(
		store.NewMemoryStore(),
		provider,
		adapter.NewCounterSequencer(0),
		mockPublisher,
		adapter.NewJSON(),
		adapter.NewJCS(),
		adapter.NewClock(),
		metadata.Config{},
	)
	ctx := identity.WithCaller(context.Background(), provider.Owner())

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockFS.EXPECT().ReadFile(recordsFile).Return(recordsJSON(12), nil)

	imp := importer.NewImporter(reg, mockFS, adapter.NewJSON(), 5)
	res, err := imp.Import(ctx, recordsFile)

	require.NoError(t, err)
	assert.Equal(t, importer.Result{Records: 12, Batches: 3, CompletedBatches: 3}, res)
	assert.Equal(t, []domain.TokenID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, published)
}
