package solana

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// PaymentRequest describes an unsigned role payment. Tracking is optional.
type PaymentRequest struct {
	Payer     string
	Recipient string
	Amount    float64
	UseUSDC   bool
	Tracking  solanago.Instruction
}

type Builder struct {
	client   RPCClient
	treasury solanago.PublicKey
	usdcMint solanago.PublicKey
}

func NewBuilder(client RPCClient, treasuryAddress, usdcMint string) (*Builder, error) {
	treasury, err := solanago.PublicKeyFromBase58(treasuryAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid treasury address: %w", err)
	}
	mint, err := solanago.PublicKeyFromBase58(usdcMint)
	if err != nil {
		return nil, fmt.Errorf("invalid usdc mint: %w", err)
	}
	return &Builder{client: client, treasury: treasury, usdcMint: mint}, nil
}

// TrackingInstruction tags a payment with the guild and role it buys.
func TrackingInstruction(guildID, roleID string, payer solanago.PublicKey) solanago.Instruction {
	return solanago.NewInstruction(
		solanago.MemoProgramID,
		solanago.AccountMetaSlice{solanago.NewAccountMeta(payer, false, true)},
		[]byte(fmt.Sprintf("blinkshare:%s:%s", guildID, roleID)),
	)
}

// BuildPaymentTransaction compiles, but never signs, the payment for req.
func (b *Builder) BuildPaymentTransaction(ctx context.Context, req PaymentRequest) (*solanago.Transaction, error) {
	payer, err := solanago.PublicKeyFromBase58(req.Payer)
	if err != nil {
		return nil, fmt.Errorf("invalid payer address: %w", err)
	}
	recipient, err := solanago.PublicKeyFromBase58(req.Recipient)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	var instructions []solanago.Instruction
	if req.UseUSDC {
		instructions, err = b.tokenTransfer(payer, recipient, req.Amount)
	} else {
		instructions, err = b.nativeTransfer(ctx, payer, recipient, req.Amount)
	}
	if err != nil {
		return nil, err
	}
	if req.Tracking != nil {
		instructions = append(instructions, req.Tracking)
	}

	latest, err := b.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest blockhash: %w", err)
	}
	if latest == nil || latest.Value == nil {
		return nil, fmt.Errorf("failed to fetch latest blockhash: empty response")
	}

	tx, err := solanago.NewTransaction(instructions, latest.Value.Blockhash, solanago.TransactionPayer(payer))
	if err != nil {
		return nil, fmt.Errorf("failed to compile transaction: %w", err)
	}
	return tx, nil
}

func (b *Builder) nativeTransfer(ctx context.Context, payer, recipient solanago.PublicKey, amount float64) ([]solanago.Instruction, error) {
	total := ToLamports(amount)
	if total == 0 {
		return nil, ErrInvalidAmount
	}

	balance, err := b.client.GetBalance(ctx, payer, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payer balance: %w", err)
	}
	if balance == nil {
		return nil, fmt.Errorf("failed to fetch payer balance: empty response")
	}
	if balance.Value < total {
		return nil, &InsufficientFundsError{Required: total, Available: balance.Value}
	}

	fee, remainder := SplitTreasuryFee(total)
	instructions := make([]solanago.Instruction, 0, 3)
	if fee > 0 {
		instructions = append(instructions, system.NewTransferInstruction(fee, payer, b.treasury).Build())
	}
	instructions = append(instructions, system.NewTransferInstruction(remainder, payer, recipient).Build())
	return instructions, nil
}

func (b *Builder) tokenTransfer(payer, recipient solanago.PublicKey, amount float64) ([]solanago.Instruction, error) {
	units := ToUSDCUnits(amount)
	if units == 0 {
		return nil, ErrInvalidAmount
	}

	source, _, err := solanago.FindAssociatedTokenAddress(payer, b.usdcMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive payer token account: %w", err)
	}
	destination, _, err := solanago.FindAssociatedTokenAddress(recipient, b.usdcMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive recipient token account: %w", err)
	}

	transfer := token.NewTransferCheckedInstruction(
		units, USDCDecimals, source, b.usdcMint, destination, payer, nil,
	).Build()
	return []solanago.Instruction{transfer}, nil
}
