package solana

import (
	"context"
	"errors"
	"log/slog"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/metrics"
)

// Verifier answers whether a payment transaction landed without error.
type Verifier struct {
	client       RPCClient
	timeout      time.Duration
	pollInterval time.Duration
}

func NewVerifier(client RPCClient, timeout, pollInterval time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Verifier{client: client, timeout: timeout, pollInterval: pollInterval}
}

// IsTransactionConfirmed fails closed: any RPC error, timeout or on-chain
// execution error yields false.
func (v *Verifier) IsTransactionConfirmed(ctx context.Context, signature string) bool {
	if signature == "" {
		return false
	}

	confirmed, err := v.confirm(ctx, signature)
	switch {
	case err != nil:
		slog.Error("Transaction confirmation failed",
			slog.String("type", "rpc"),
			slog.String("component", "payment_verifier"),
			slog.String("signature", signature),
			slog.Any("error", err))
		metrics.PaymentVerifications.WithLabelValues("error").Inc()
	case confirmed:
		metrics.PaymentVerifications.WithLabelValues("confirmed").Inc()
	default:
		metrics.PaymentVerifications.WithLabelValues("rejected").Inc()
	}
	return err == nil && confirmed
}

var errBlockhashExpired = errors.New("blockhash expired before confirmation")

func (v *Verifier) confirm(ctx context.Context, signature string) (bool, error) {
	sig, err := solanago.SignatureFromBase58(signature)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	latest, err := v.client.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return false, err
	}
	if latest == nil || latest.Value == nil {
		return false, errors.New("empty latest blockhash response")
	}
	lastValid := latest.Value.LastValidBlockHeight

	ticker := time.NewTicker(v.pollInterval)
	defer ticker.Stop()

	for {
		done, ok, err := v.poll(ctx, sig, lastValid)
		if done || err != nil {
			return ok, err
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}

// poll reports done once the signature reached confirmed commitment or can no longer land.
func (v *Verifier) poll(ctx context.Context, sig solanago.Signature, lastValid uint64) (done, ok bool, err error) {
	statuses, err := v.client.GetSignatureStatuses(ctx, true, sig)
	if err != nil && !errors.Is(err, rpc.ErrNotFound) {
		return true, false, err
	}

	if err == nil && statuses != nil && len(statuses.Value) > 0 && statuses.Value[0] != nil {
		status := statuses.Value[0]
		if status.Err != nil {
			slog.Warn("Transaction failed on chain",
				slog.String("type", "rpc"),
				slog.String("signature", sig.String()),
				slog.Any("tx_error", status.Err))
			return true, false, nil
		}
		switch status.ConfirmationStatus {
		case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
			return true, true, nil
		}
	}

	height, err := v.client.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return true, false, err
	}
	if height > lastValid {
		return true, false, errBlockhashExpired
	}
	return false, false, nil
}
