package txbuilder

import (
	"context"
	"sync"

	bin "github.com/gagliardetto/binary"
	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
)

// Address lookup table account layout: a fixed header followed by the stored
// addresses, 32 bytes each.
const lookupTableHeaderLen = 56

// resolveLookupTables fetches and decodes every referenced lookup table
// account. Tables are fetched concurrently; the first failure cancels the
// rest, since a partially resolved set cannot produce a valid message.
func (b *Builder) resolveLookupTables(ctx context.Context, addresses []string) (map[sol.PublicKey]sol.PublicKeySlice, error) {
	if len(addresses) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		key     sol.PublicKey
		entries sol.PublicKeySlice
		err     error
	}

	results := make(chan result, len(addresses))
	var wg sync.WaitGroup

	for _, address := range addresses {
		wg.Add(1)
		go func(address string) {
			defer wg.Done()

			key, err := sol.PublicKeyFromBase58(address)
			if err != nil {
				results <- result{err: errors.Wrapf(commonerrors.ErrLookupTableUnresolvable, "table address %q is not a valid key", address)}
				cancel()
				return
			}

			entries, err := b.fetchLookupTable(ctx, key)
			if err != nil {
				results <- result{err: err}
				cancel()
				return
			}

			results <- result{key: key, entries: entries}
		}(address)
	}

	wg.Wait()
	close(results)

	tables := make(map[sol.PublicKey]sol.PublicKeySlice, len(addresses))
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		tables[res.key] = res.entries
	}

	return tables, nil
}

// fetchLookupTable loads one table account and decodes its stored addresses.
func (b *Builder) fetchLookupTable(ctx context.Context, key sol.PublicKey) (sol.PublicKeySlice, error) {
	account, err := b.solanaRPC.GetAccountInfo(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(commonerrors.ErrLookupTableUnresolvable, "failed to fetch table %s: %v", key, err)
	}
	if account == nil || account.Value == nil {
		return nil, errors.Wrapf(commonerrors.ErrLookupTableUnresolvable, "table account %s not found", key)
	}

	entries, err := decodeLookupTableState(account.Value.Data.GetBinary())
	if err != nil {
		return nil, errors.Wrapf(commonerrors.ErrLookupTableUnresolvable, "failed to decode table %s: %v", key, err)
	}

	return entries, nil
}

// decodeLookupTableState parses the on-chain lookup table account data:
// u32 type index, u64 deactivation slot, u64 last extended slot, u8 last
// extended slot start index, u8 authority option, 32-byte authority, u16
// padding, then the address entries.
func decodeLookupTableState(data []byte) (sol.PublicKeySlice, error) {
	if len(data) < lookupTableHeaderLen {
		return nil, errors.New("account data shorter than table header")
	}

	decoder := bin.NewBinDecoder(data)

	typeIndex, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read type index")
	}
	if typeIndex != 1 {
		return nil, errors.Errorf("account is not a lookup table (type %d)", typeIndex)
	}

	if _, err := decoder.ReadUint64(bin.LE); err != nil {
		return nil, errors.Wrap(err, "failed to read deactivation slot")
	}
	if _, err := decoder.ReadUint64(bin.LE); err != nil {
		return nil, errors.Wrap(err, "failed to read last extended slot")
	}
	if _, err := decoder.ReadUint8(); err != nil {
		return nil, errors.Wrap(err, "failed to read start index")
	}
	if _, err := decoder.ReadUint8(); err != nil {
		return nil, errors.Wrap(err, "failed to read authority option")
	}
	if _, err := decoder.ReadNBytes(32); err != nil {
		return nil, errors.Wrap(err, "failed to read authority")
	}
	if _, err := decoder.ReadUint16(bin.LE); err != nil {
		return nil, errors.Wrap(err, "failed to read padding")
	}

	remaining := decoder.Remaining()
	if remaining%32 != 0 {
		return nil, errors.Errorf("address region length %d is not a multiple of 32", remaining)
	}

	entries := make(sol.PublicKeySlice, 0, remaining/32)
	for decoder.Remaining() >= 32 {
		raw, err := decoder.ReadNBytes(32)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read address entry")
		}
		entries = append(entries, sol.PublicKeyFromBytes(raw))
	}

	return entries, nil
}
