package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"wallet-engine/dto"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/errorcode"
)

func ownedNFT(contract, tokenID, title string) dto.OwnedNFT {
	nft := dto.OwnedNFT{Title: title}
	nft.Contract.Address = contract
	nft.ID.TokenID = tokenID
	return nft
}

func TestGetNFTsAggregatesAcrossNetworks(t *testing.T) {
	indexer := newFakeIndexer()
	indexer.nfts["base"] = []dto.OwnedNFT{ownedNFT("0xc1", "0x1", "Based Punk")}
	indexer.nfts["polygon"] = []dto.OwnedNFT{ownedNFT("0xc2", "0x2", "Poly Ape")}

	service := NewNFTService(testRegistry(), indexer)
	holdings, err := service.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, holdings, 2)
}

func TestGetNFTsFailsWhenEveryNetworkFails(t *testing.T) {
	indexer := newFakeIndexer()
	for _, id := range []string{"base", "ethereum", "polygon"} {
		indexer.nftErrs[id] = errors.New("down")
	}

	service := NewNFTService(testRegistry(), indexer)
	_, err := service.GetNFTs(context.Background(), testAddress)
	require.Error(t, err)
	require.Equal(t, errorcode.FETCH_NFTS_FAILED, appError.TypeOf(err, ""))
}

func TestNormalizeNFTSynthesizesNameFromCollection(t *testing.T) {
	nft := ownedNFT("0xc1", "0x2a", "")
	nft.ContractMetadata.OpenSea.CollectionName = "Cool Cats"

	indexer := newFakeIndexer()
	indexer.nfts["base"] = []dto.OwnedNFT{nft}

	service := NewNFTService(testRegistry(), indexer)
	holdings, err := service.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	require.Equal(t, "Cool Cats #42", holdings[0].Name)
	require.Equal(t, "42", holdings[0].TokenID)
	require.Equal(t, "ERC721", holdings[0].TokenType)
}

func TestNormalizeNFTRewritesIPFSImage(t *testing.T) {
	nft := ownedNFT("0xc1", "0x1", "Pinned")
	nft.Metadata.Image = "ipfs://QmHash/image.png"

	indexer := newFakeIndexer()
	indexer.nfts["base"] = []dto.OwnedNFT{nft}

	service := NewNFTService(testRegistry(), indexer)
	holdings, err := service.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, "https://ipfs.io/ipfs/QmHash/image.png", holdings[0].ImageURL)
}

func TestNormalizeNFTPrefersGatewayOverRaw(t *testing.T) {
	nft := ownedNFT("0xc1", "0x1", "Cached")
	nft.Media = []dto.NFTMedia{{Gateway: "https://cdn.example/1.png", Raw: "ipfs://QmRaw"}}

	indexer := newFakeIndexer()
	indexer.nfts["base"] = []dto.OwnedNFT{nft}

	service := NewNFTService(testRegistry(), indexer)
	holdings, err := service.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/1.png", holdings[0].ImageURL)
}

func TestNormalizeNFTERC1155CarriesQuantity(t *testing.T) {
	nft := ownedNFT("0xc1", "0x5", "Edition")
	nft.ID.TokenMetadata.TokenType = "erc1155"
	nft.Balance = "7"

	indexer := newFakeIndexer()
	indexer.nfts["base"] = []dto.OwnedNFT{nft}

	service := NewNFTService(testRegistry(), indexer)
	holdings, err := service.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, "ERC1155", holdings[0].TokenType)
	require.Equal(t, "7", holdings[0].Quantity)
}

func TestNormalizeNFTCarriesAttributes(t *testing.T) {
	nft := ownedNFT("0xc1", "0x1", "Traited")
	nft.Metadata.Attributes = []struct {
		TraitType string      `json:"trait_type"`
		Value     interface{} `json:"value"`
	}{
		{TraitType: "Background", Value: "Blue"},
		{TraitType: "Level", Value: float64(3)},
	}

	indexer := newFakeIndexer()
	indexer.nfts["base"] = []dto.OwnedNFT{nft}

	service := NewNFTService(testRegistry(), indexer)
	holdings, err := service.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, holdings[0].Attributes, 2)
	require.Equal(t, "Background", holdings[0].Attributes[0].TraitType)
	require.Equal(t, "Blue", holdings[0].Attributes[0].Value)
}

func TestRewriteContentURI(t *testing.T) {
	cases := map[string]string{
		"ipfs://ipfs/QmA":          "https://ipfs.io/ipfs/QmA",
		"ipfs://QmB/1.png":         "https://ipfs.io/ipfs/QmB/1.png",
		"ar://abc123":              "https://arweave.net/abc123",
		"https://cdn.example/x":    "https://cdn.example/x",
		"":                         "",
	}
	for input, want := range cases {
		require.Equal(t, want, rewriteContentURI(input))
	}
}
