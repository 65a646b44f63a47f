package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlexZinkM/wallet-approval/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the local keyfile
	// N=2^18 (~256MB RAM, 0.5-2s)
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	// Network is written into every keyfile this package creates.
	Network = "ethereum"
	// Extension is the required keyfile suffix.
	Extension = ".cwt"
)

// DefaultKDF returns the scrypt parameters used for new keyfiles.
func DefaultKDF() model.KDFParams {
	return model.KDFParams{N: scryptN, R: scryptR, P: scryptP}
}

// Options tune keyfile encryption.
type Options struct {
	// KDF overrides the scrypt cost. Zero means DefaultKDF.
	KDF model.KDFParams
	// QR is an optional base64 PNG of the address stored in clear text.
	QR string
	// Overwrite allows replacing a non-empty file.
	Overwrite bool
}

// EncryptKeyFile encrypts key data and writes it to a .cwt file
// password must be []byte for security (caller should zero it after use)
func EncryptKeyFile(filePath, address string, keyData *model.KeyData, password []byte, opts Options) error {
	if !strings.HasSuffix(filePath, Extension) {
		return fmt.Errorf("file must have %s extension", Extension)
	}
	if len(password) == 0 {
		return errors.New("password must not be empty")
	}

	if !opts.Overwrite {
		if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
			return fmt.Errorf("file is not empty: %w", os.ErrExist)
		}
	}

	kdf := opts.KDF
	if kdf.N == 0 {
		kdf = DefaultKDF()
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, kdf)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(keyData)
	if err != nil {
		return fmt.Errorf("failed to marshal key data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, []byte(address))

	cwtFile := model.CWTFile{
		Network:    Network,
		Address:    address,
		QR:         opts.QR,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}
	if kdf != DefaultKDF() {
		cwtFile.KDF = &kdf
	}

	fileData, err := json.MarshalIndent(cwtFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cwt file: %w", err)
	}

	// Add UTF-8 BOM for proper display in Windows
	utf8BOM := []byte{0xEF, 0xBB, 0xBF}
	fileDataWithBOM := append(utf8BOM, fileData...)

	// Write next to the target and rename so a failed write never truncates an existing keyfile
	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".cwt-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if _, err := tmp.Write(fileDataWithBOM); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ChangePassword re-encrypts a keyfile under a new password with fresh salt and nonce.
func ChangePassword(filePath string, oldPassword, newPassword []byte, opts Options) error {
	cwtFile, keyData, err := DecryptKeyFile(filePath, oldPassword)
	if err != nil {
		return err
	}
	defer clear(keyData.PrivateKey)

	if opts.QR == "" {
		opts.QR = cwtFile.QR
	}
	if opts.KDF.N == 0 && cwtFile.KDF != nil {
		opts.KDF = *cwtFile.KDF
	}
	opts.Overwrite = true

	return EncryptKeyFile(filePath, cwtFile.Address, keyData, newPassword, opts)
}

func newGCM(password, salt []byte, kdf model.KDFParams) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, kdf.N, kdf.R, kdf.P, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
