package solana

import (
	"context"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

//go:generate mockgen -source=client.go -destination=mock/client.go -package=mock

// RPCClient is the subset of *rpc.Client used by the verifier and builder.
type RPCClient interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solanago.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error)
	GetBalance(ctx context.Context, publicKey solanago.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
}

// NewRPCClient dials nothing; requests are issued lazily against endpoint.
func NewRPCClient(endpoint string) RPCClient {
	return rpc.New(endpoint)
}
