package solana

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/solana/mock"
)

const systemTransferIndex = 2

type testKeys struct {
	payer, recipient, treasury, mint solanago.PublicKey
}

func newTestKeys() testKeys {
	return testKeys{
		payer:     solanago.NewWallet().PublicKey(),
		recipient: solanago.NewWallet().PublicKey(),
		treasury:  solanago.NewWallet().PublicKey(),
		mint:      solanago.NewWallet().PublicKey(),
	}
}

func latestBlockhash() *rpc.GetLatestBlockhashResult {
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{
			Blockhash:            solanago.Hash(solanago.NewWallet().PublicKey()),
			LastValidBlockHeight: 1000,
		},
	}
}

func programOf(tx *solanago.Transaction, ix solanago.CompiledInstruction) solanago.PublicKey {
	return tx.Message.AccountKeys[ix.ProgramIDIndex]
}

func accountOf(tx *solanago.Transaction, ix solanago.CompiledInstruction, i int) solanago.PublicKey {
	return tx.Message.AccountKeys[ix.Accounts[i]]
}

func lamportsOf(t *testing.T, ix solanago.CompiledInstruction) uint64 {
	t.Helper()
	require.Len(t, []byte(ix.Data), 12)
	require.Equal(t, uint32(systemTransferIndex), binary.LittleEndian.Uint32(ix.Data[:4]))
	return binary.LittleEndian.Uint64(ix.Data[4:12])
}

func TestBuilder_BuildPaymentTransaction_Native(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := newTestKeys()
	client := mock.NewMockRPCClient(ctrl)

	builder, err := NewBuilder(client, keys.treasury.String(), keys.mint.String())
	require.NoError(t, err)

	client.EXPECT().GetBalance(gomock.Any(), keys.payer, rpc.CommitmentConfirmed).
		Return(&rpc.GetBalanceResult{Value: 5 * LamportsPerSOL}, nil)
	client.EXPECT().GetLatestBlockhash(gomock.Any(), rpc.CommitmentFinalized).
		Return(latestBlockhash(), nil)

	tx, err := builder.BuildPaymentTransaction(context.Background(), PaymentRequest{
		Payer:     keys.payer.String(),
		Recipient: keys.recipient.String(),
		Amount:    1.5,
		Tracking:  TrackingInstruction("guild", "role", keys.payer),
	})
	require.NoError(t, err)

	instructions := tx.Message.Instructions
	require.Len(t, instructions, 3)
	assert.True(t, keys.payer.Equals(tx.Message.AccountKeys[0]), "payer must be fee payer")
	assert.Empty(t, tx.Signatures)

	total := ToLamports(1.5)
	fee := lamportsOf(t, instructions[0])
	remainder := lamportsOf(t, instructions[1])
	assert.Equal(t, uint64(30_000_000), fee)
	assert.Equal(t, total, fee+remainder)
	assert.True(t, keys.treasury.Equals(accountOf(tx, instructions[0], 1)))
	assert.True(t, keys.recipient.Equals(accountOf(tx, instructions[1], 1)))

	memo := instructions[2]
	assert.True(t, solanago.MemoProgramID.Equals(programOf(tx, memo)))
	assert.Equal(t, "blinkshare:guild:role", string(memo.Data))
}

func TestBuilder_BuildPaymentTransaction_USDC(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := newTestKeys()
	client := mock.NewMockRPCClient(ctrl)

	builder, err := NewBuilder(client, keys.treasury.String(), keys.mint.String())
	require.NoError(t, err)

	client.EXPECT().GetLatestBlockhash(gomock.Any(), rpc.CommitmentFinalized).
		Return(latestBlockhash(), nil)

	tx, err := builder.BuildPaymentTransaction(context.Background(), PaymentRequest{
		Payer:     keys.payer.String(),
		Recipient: keys.recipient.String(),
		Amount:    2.5,
		UseUSDC:   true,
	})
	require.NoError(t, err)
	require.Len(t, tx.Message.Instructions, 1)

	transfer := tx.Message.Instructions[0]
	assert.True(t, solanago.TokenProgramID.Equals(programOf(tx, transfer)))

	data := []byte(transfer.Data)
	require.Len(t, data, 10)
	assert.Equal(t, uint64(2_500_000), binary.LittleEndian.Uint64(data[1:9]))
	assert.Equal(t, uint8(USDCDecimals), data[9])

	source, _, err := solanago.FindAssociatedTokenAddress(keys.payer, keys.mint)
	require.NoError(t, err)
	destination, _, err := solanago.FindAssociatedTokenAddress(keys.recipient, keys.mint)
	require.NoError(t, err)
	assert.True(t, source.Equals(accountOf(tx, transfer, 0)))
	assert.True(t, keys.mint.Equals(accountOf(tx, transfer, 1)))
	assert.True(t, destination.Equals(accountOf(tx, transfer, 2)))
	assert.True(t, keys.payer.Equals(accountOf(tx, transfer, 3)))
}

func TestBuilder_BuildPaymentTransaction_Errors(t *testing.T) {
	keys := newTestKeys()

	tests := []struct {
		name      string
		request   PaymentRequest
		setupMock func(*mock.MockRPCClient)
		check     func(*testing.T, error)
	}{
		{
			name: "insufficient native balance",
			request: PaymentRequest{
				Payer: keys.payer.String(), Recipient: keys.recipient.String(), Amount: 1,
			},
			setupMock: func(m *mock.MockRPCClient) {
				m.EXPECT().GetBalance(gomock.Any(), keys.payer, rpc.CommitmentConfirmed).
					Return(&rpc.GetBalanceResult{Value: LamportsPerSOL / 2}, nil)
			},
			check: func(t *testing.T, err error) {
				var insufficient *InsufficientFundsError
				require.ErrorAs(t, err, &insufficient)
				assert.Equal(t, uint64(LamportsPerSOL/2), insufficient.Available)
				assert.Contains(t, err.Error(), "0.5 SOL")
			},
		},
		{
			name: "zero amount",
			request: PaymentRequest{
				Payer: keys.payer.String(), Recipient: keys.recipient.String(), Amount: 0,
			},
			setupMock: func(m *mock.MockRPCClient) {},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidAmount)
			},
		},
		{
			name: "negative usdc amount",
			request: PaymentRequest{
				Payer: keys.payer.String(), Recipient: keys.recipient.String(), Amount: -3, UseUSDC: true,
			},
			setupMock: func(m *mock.MockRPCClient) {},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidAmount)
			},
		},
		{
			name: "invalid payer",
			request: PaymentRequest{
				Payer: "not-base58!", Recipient: keys.recipient.String(), Amount: 1,
			},
			setupMock: func(m *mock.MockRPCClient) {},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "invalid payer address")
			},
		},
		{
			name: "balance lookup fails",
			request: PaymentRequest{
				Payer: keys.payer.String(), Recipient: keys.recipient.String(), Amount: 1,
			},
			setupMock: func(m *mock.MockRPCClient) {
				m.EXPECT().GetBalance(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("rpc down"))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "rpc down")
			},
		},
		{
			name: "empty balance response",
			request: PaymentRequest{
				Payer: keys.payer.String(), Recipient: keys.recipient.String(), Amount: 1,
			},
			setupMock: func(m *mock.MockRPCClient) {
				m.EXPECT().GetBalance(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "empty response")
			},
		},
		{
			name: "blockhash lookup fails",
			request: PaymentRequest{
				Payer: keys.payer.String(), Recipient: keys.recipient.String(), Amount: 1, UseUSDC: true,
			},
			setupMock: func(m *mock.MockRPCClient) {
				m.EXPECT().GetLatestBlockhash(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("rpc down"))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "latest blockhash")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock.NewMockRPCClient(ctrl)
			tt.setupMock(client)

			builder, err := NewBuilder(client, keys.treasury.String(), keys.mint.String())
			require.NoError(t, err)

			tx, err := builder.BuildPaymentTransaction(context.Background(), tt.request)
			require.Error(t, err)
			assert.Nil(t, tx)
			tt.check(t, err)
		})
	}
}

func TestNewBuilder_InvalidTreasury(t *testing.T) {
	_, err := NewBuilder(nil, "bad", solanago.NewWallet().PublicKey().String())
	assert.ErrorContains(t, err, "invalid treasury address")
}
