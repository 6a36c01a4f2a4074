package config

import "sync/atomic"

// Store 保存目前生效的設定。設定檔熱更新時整份替換，
// 讀取端拿到的 *Configuration 之後不會再被修改。
type Store struct {
	current atomic.Pointer[Configuration]
}

func NewStore(conf *Configuration) *Store {
	s := &Store{}
	s.Set(conf)
	return s
}

// Load 回傳目前的設定；尚未載入時回傳零值設定
func (s *Store) Load() *Configuration {
	if conf := s.current.Load(); conf != nil {
		return conf
	}
	return &Configuration{}
}

func (s *Store) Set(conf *Configuration) {
	if conf == nil {
		return
	}
	s.current.Store(conf)
}
