package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"wallet-engine/dto"
	"wallet-engine/model"
	"wallet-engine/registry"
	"wallet-engine/utility"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/errorcode"
	"wallet-engine/utility/logger"
)

// historyPageSize caps each network's contribution, hex-encoded for the
// indexer (0x32 = 50).
const historyPageSize = "0x32"

var historyCategories = []string{"external", "erc20", "erc721", "erc1155"}

//HistoryService object. Aggregates asset-transfer logs across networks into
//one globally time-ordered list.
type HistoryService struct {
	Registry *registry.Service
	Indexer  IIndexerService
}

// NewHistoryService ... Creates a history aggregation service instance
func NewHistoryService(networks *registry.Service, indexer IIndexerService) *HistoryService {
	return &HistoryService{
		Registry: networks,
		Indexer:  indexer,
	}
}

// GetHistory ... Fans out across all networks, fetching sent and received
// transfers, and merges them ordered by timestamp descending. Ties break by
// network id then hash so the order is deterministic.
func (service *HistoryService) GetHistory(ctx context.Context, address string) ([]model.TransferRecord, error) {
	networks := service.Registry.All()

	var waitGroup sync.WaitGroup
	var mutex sync.Mutex
	records := []model.TransferRecord{}
	failedNetworks := 0

	for _, network := range networks {
		waitGroup.Add(1)
		go func(network model.Network) {
			defer waitGroup.Done()
			networkRecords, err := service.networkHistory(ctx, network, address)
			mutex.Lock()
			defer mutex.Unlock()
			if err != nil {
				failedNetworks++
				logger.Warning("Excluding %s from history aggregation : %s", network.ID, err)
				return
			}
			records = append(records, networkRecords...)
		}(network)
	}
	waitGroup.Wait()

	if failedNetworks == len(networks) {
		return nil, appError.New(http.StatusInternalServerError, errorcode.FETCH_HISTORY_FAILED, errors.New(errorcode.ALL_NETWORKS_FAILED))
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TimestampMs != records[j].TimestampMs {
			return records[i].TimestampMs > records[j].TimestampMs
		}
		if records[i].Network != records[j].Network {
			return records[i].Network < records[j].Network
		}
		return records[i].Hash < records[j].Hash
	})
	return records, nil
}

func (service *HistoryService) networkHistory(ctx context.Context, network model.Network, address string) ([]model.TransferRecord, error) {
	sent, err := service.Indexer.AssetTransfers(ctx, network, dto.AssetTransferParams{
		FromBlock:    "0x0",
		FromAddress:  address,
		Category:     historyCategories,
		Order:        "desc",
		MaxCount:     historyPageSize,
		WithMetadata: true,
	})
	if err != nil {
		return nil, err
	}
	received, err := service.Indexer.AssetTransfers(ctx, network, dto.AssetTransferParams{
		FromBlock:    "0x0",
		ToAddress:    address,
		Category:     historyCategories,
		Order:        "desc",
		MaxCount:     historyPageSize,
		WithMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var records []model.TransferRecord
	for _, transfer := range append(sent, received...) {
		key := fmt.Sprintf("%s|%s|%s|%s", transfer.Hash, transfer.From, transfer.To, transfer.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, buildRecord(network, transfer))
	}
	return records, nil
}

func buildRecord(network model.Network, transfer dto.AssetTransfer) model.TransferRecord {
	value := 0.0
	if transfer.Value != nil {
		value = *transfer.Value
	}
	timestampMs := int64(0)
	if parsed, err := time.Parse(time.RFC3339, transfer.Metadata.BlockTimestamp); err == nil {
		timestampMs = parsed.UnixMilli()
	}
	return model.TransferRecord{
		Network:     network.ID,
		Hash:        transfer.Hash,
		From:        transfer.From,
		To:          transfer.To,
		Value:       value,
		AssetSymbol: transfer.Asset,
		Category:    transfer.Category,
		TimestampMs: timestampMs,
		BlockNumber: utility.ParseHexBig(transfer.BlockNum).Uint64(),
		ExplorerURL: fmt.Sprintf("%s/tx/%s", network.ExplorerBaseURL, transfer.Hash),
	}
}
