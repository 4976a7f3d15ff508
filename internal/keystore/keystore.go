// Package keystore 加密保存 API Key。
// 密钥派生自机器指纹加可选密码，文件泄露后在别的机器上解不开。
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jogholy/xhs-publisher/internal/config"

	"golang.org/x/crypto/pbkdf2"
)

const (
	kdfIterations = 480000
	keyLength     = 32
	saltLength    = 16
)

var machineIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// Store API Key 加密存储
type Store struct {
	path     string
	saltPath string
	password string
}

// New 创建存储，文件位置取全局配置
// password 为空时仅依赖机器指纹
func New(password string) *Store {
	return NewAt(config.Config.KeystorePath, password)
}

// NewAt 指定文件位置创建存储，盐文件放在同目录
func NewAt(path, password string) *Store {
	return &Store{
		path:     path,
		saltPath: filepath.Join(filepath.Dir(path), ".salt"),
		password: password,
	}
}

// Exists 加密文件是否已创建
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path 返回加密文件路径
func (s *Store) Path() string {
	return s.path
}

// Set 设置或更新一个 Key
// 只有文件缺席才从空开始；解密失败直接报错，
// 否则密码不对时一次 set 就会覆盖掉整个已有存储
func (s *Store) Set(name, value string) error {
	keys, err := s.load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		keys = map[string]string{}
	}
	keys[name] = value
	return s.save(keys)
}

// Get 读取一个 Key，缺席时报错
func (s *Store) Get(name string) (string, error) {
	keys, err := s.load()
	if err != nil {
		return "", err
	}
	value, ok := keys[name]
	if !ok {
		return "", fmt.Errorf("未找到 Key: %s", name)
	}
	return value, nil
}

// List 返回全部 Key
func (s *Store) List() (map[string]string, error) {
	return s.load()
}

// Delete 删除一个 Key
func (s *Store) Delete(name string) error {
	keys, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := keys[name]; !ok {
		return fmt.Errorf("未找到 Key: %s", name)
	}
	delete(keys, name)
	return s.save(keys)
}

func (s *Store) save(keys map[string]string) error {
	plaintext, err := json.Marshal(keys)
	if err != nil {
		return err
	}

	gcm, err := s.aead()
	if err != nil {
		return err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("失败: 生成随机数 - %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, sealed, 0600); err != nil {
		return fmt.Errorf("失败: 写入加密文件 - %w", err)
	}
	return nil
}

func (s *Store) load() (map[string]string, error) {
	sealed, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("失败: 读取加密文件 - %w", err)
	}

	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("加密文件损坏: 长度不足")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("解密失败，密码错误或文件损坏: %w", err)
	}

	var keys map[string]string
	if err := json.Unmarshal(plaintext, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// aead 派生密钥并构造 AES-256-GCM
func (s *Store) aead() (cipher.AEAD, error) {
	salt, err := s.loadSalt()
	if err != nil {
		return nil, err
	}

	combined := fmt.Sprintf("%s:%s", s.password, machineID())
	key := pbkdf2.Key([]byte(combined), salt, kdfIterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// loadSalt 读取或首次生成盐值
func (s *Store) loadSalt() ([]byte, error) {
	if salt, err := os.ReadFile(s.saltPath); err == nil && len(salt) == saltLength {
		return salt, nil
	}
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("失败: 生成盐值 - %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.saltPath), 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.saltPath, salt, 0600); err != nil {
		return nil, fmt.Errorf("失败: 保存盐值 - %w", err)
	}
	return salt, nil
}

// machineID 机器指纹，读不到系统 machine-id 时退化为主机名加 UID
func machineID() string {
	for _, path := range machineIDPaths {
		if data, err := os.ReadFile(path); err == nil {
			if id := string(data); id != "" {
				return id
			}
		}
	}
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s_%d", hostname, os.Getuid())
}

// MaskValue 打码显示 Key 值
func MaskValue(v string) string {
	if len(v) > 8 {
		return v[:4] + "***" + v[len(v)-4:]
	}
	return "***"
}
