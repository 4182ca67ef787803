package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/config"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/crypto"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"

	"github.com/joho/godotenv"
)

// Interactive CLI for encrypting and decrypting secret setting values
// with the server's key pair.
func main() {
	var log = logger.New("helper")
	log.Info("🔑 Starting encryption/decryption helper CLI")

	err := godotenv.Load()
	if err != nil {
		log.Error("❌ Failed to load environment variables", err)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("❌ Failed to load configuration", err)
		return
	}
	err = crypto.InitializeKeys(cfg.Crypto.PrivateKey)
	if err != nil {
		log.Error("❌ Failed to initialize keys", err)
		return
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Enter 'e' to encrypt, 'd' to decrypt, or 'q' to quit: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		if choice == "q" {
			log.Info("👋 Exiting helper CLI")
			break
		}

		fmt.Print("Enter the string to process: ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		if choice == "e" {
			encrypted, err := crypto.Encrypt(input)
			if err != nil {
				log.Error("❌ Encryption failed", err)
			} else {
				log.Success("✅ Encrypted string: %s", encrypted)
			}
		} else if choice == "d" {
			decrypted, err := crypto.Decrypt(input)
			if err != nil {
				log.Error("❌ Decryption failed", err)
			} else {
				log.Success("✅ Decrypted string: %s", decrypted)
			}
		} else {
			log.Warn("⚠️ Invalid choice. Please enter 'e', 'd', or 'q'.")
		}
	}
}
