package dao

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/treeforest/easyscript/script"
	log "github.com/treeforest/logger"
)

const (
	dbName       = "SCRIPTS"    // 数据库名
	scriptPrefix = "__script__" // 脚本名对应 key 的前缀
)

var (
	ErrNotFound    = errors.New("script not found")
	ErrInvalidName = errors.New("invalid script name")
)

func IsNotExistDB(path string) bool {
	_, err := os.Stat(filepath.Join(path, dbName))
	return os.IsNotExist(err)
}

// DAO 脚本存储对象，以名称为键保存脚本的二进制编码
type DAO struct {
	*leveldb.DB
}

func New(dbPath string) (*DAO, error) {
	log.Debug("db path:", filepath.Join(dbPath, dbName))
	levelDB, err := leveldb.OpenFile(filepath.Join(dbPath, dbName), &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("open leveldb [%s] error [%v]", dbName, err)
	}
	return &DAO{DB: levelDB}, nil
}

func (o *DAO) Close() error {
	return o.DB.Close()
}

func (o *DAO) keyName(name string) []byte {
	return []byte(scriptPrefix + name)
}

// Put 保存脚本，同名脚本会被覆盖
func (o *DAO) Put(name string, s *script.Script) error {
	if name == "" {
		return ErrInvalidName
	}
	buf, err := s.ToBuffer()
	if err != nil {
		return fmt.Errorf("encode script %s failed: %v", name, err)
	}
	return o.DoTransaction(func(trans *leveldb.Transaction) error {
		if err := trans.Put(o.keyName(name), buf, &opt.WriteOptions{Sync: true}); err != nil {
			return fmt.Errorf("insert script failed: %v", err)
		}
		log.Debugf("put script %s: %x", name, buf)
		return nil
	})
}

// Get 读取并解析脚本
func (o *DAO) Get(name string) (*script.Script, error) {
	buf, err := o.DB.Get(o.keyName(name), &opt.ReadOptions{DontFillCache: false})
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get script %s failed: %v", name, err)
	}
	return script.FromBuffer(buf)
}

func (o *DAO) Has(name string) (bool, error) {
	return o.DB.Has(o.keyName(name), nil)
}

// Delete 删除脚本，不存在时返回 ErrNotFound
func (o *DAO) Delete(name string) error {
	return o.DoTransaction(func(trans *leveldb.Transaction) error {
		key := o.keyName(name)
		has, err := trans.Has(key, nil)
		if err != nil {
			return fmt.Errorf("check script failed: %v", err)
		}
		if !has {
			return ErrNotFound
		}
		if err = trans.Delete(key, &opt.WriteOptions{Sync: true}); err != nil {
			return fmt.Errorf("delete script failed: %v", err)
		}
		return nil
	})
}

// Names 按字典序返回所有脚本名
func (o *DAO) Names() ([]string, error) {
	iter := o.DB.NewIterator(util.BytesPrefix([]byte(scriptPrefix)), nil)
	defer iter.Release()

	names := make([]string, 0)
	for iter.Next() {
		names = append(names, string(iter.Key()[len(scriptPrefix):]))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate scripts failed: %v", err)
	}
	sort.Strings(names)
	return names, nil
}

// DoTransaction 事务操作
func (o *DAO) DoTransaction(fn func(trans *leveldb.Transaction) error) (err error) {
	trans, err := o.DB.OpenTransaction()
	if err != nil {
		return fmt.Errorf("open transaction failed: %v", err)
	}
	defer func() {
		if err != nil {
			// 事务提交失败，销毁事务
			trans.Discard()
		}
	}()

	if err = fn(trans); err != nil {
		return err
	}

	if err = trans.Commit(); err != nil {
		return fmt.Errorf("commit failed: %v", err)
	}

	return nil
}
