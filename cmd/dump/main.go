package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/igwefaith662-collab/ReputeFi/rpc/token"
)

type storageEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type contractDump struct {
	Name    string         `json:"name"`
	Hash    string         `json:"hash"`
	Block   uint32         `json:"block"`
	Storage []storageEntry `json:"storage"`
}

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")

	contractFlags := map[string]*string{
		"token":       flag.String("token", "", "Hash of the token contract (LE hex)"),
		"reputation":  flag.String("reputation", "", "Hash of the reputation contract (LE hex)"),
		"certificate": flag.String("certificate", "", "Hash of the certificate contract (LE hex)"),
		"market":      flag.String("market", "", "Hash of the market contract (LE hex)"),
		"loan":        flag.String("loan", "", "Hash of the loan contract (LE hex)"),
		"insurance":   flag.String("insurance", "", "Hash of the insurance contract (LE hex)"),
	}

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	}

	contracts := make(map[string]util.Uint160)
	for name, f := range contractFlags {
		if *f == "" {
			continue
		}
		h, err := util.Uint160DecodeStringLE(*f)
		if err != nil {
			log.Fatal(fmt.Errorf("decode '%s' contract hash: %w", name, err))
		}
		contracts[name] = h
	}
	if len(contracts) == 0 {
		log.Fatal("no contract hashes given")
	}

	rootDir := filepath.Join("testdata", *chainLabel)

	err := os.MkdirAll(rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, rootDir, contracts)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("ReputeFi contracts are successfully dumped to '%s/'\n", rootDir)
}

func _dump(neoBlockchainRPCEndpoint, rootDir string, contracts map[string]util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	for name, h := range contracts {
		log.Printf("Processing contract '%s'...\n", name)

		d := contractDump{
			Name:  name,
			Hash:  h.StringLE(),
			Block: b.currentBlock,
		}

		err = b.iterateContractStorage(h, func(key, value []byte) error {
			d.Storage = append(d.Storage, storageEntry{
				Key:   base58.Encode(key),
				Value: base58.Encode(value),
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("iterate '%s' contract storage: %w", name, err)
		}

		err = writeContractDump(rootDir, d)
		if err != nil {
			return fmt.Errorf("write '%s' contract dump: %w", name, err)
		}
	}

	if h, ok := contracts["token"]; ok {
		reader := token.NewReader(b.actor, h)

		supply, err := reader.TotalSupply()
		if err != nil {
			return fmt.Errorf("get token total supply: %w", err)
		}

		log.Printf("Token total supply at block #%d: %s\n", b.currentBlock, supply)
	}

	return nil
}

func writeContractDump(rootDir string, d contractDump) error {
	data, err := json.MarshalIndent(d, "", " ")
	if err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}

	return os.WriteFile(filepath.Join(rootDir, d.Name+".json"), data, 0600)
}
