package gconf

import (
	"reflect"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/x"
)

// OwnedConfig is a configuration that declares who may change it.
type OwnedConfig interface {
	Configuration
	GetOwner() crosspile.Address
}

// UpdateConfigurationHandler replaces a stored configuration with the one
// carried in the "Config" field of the message.
type UpdateConfigurationHandler struct {
	pkg    string
	config OwnedConfig
	auth   x.Authenticator
}

var _ crosspile.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler that requires the
// signature of the current configuration owner. A configuration that was
// not created in genesis cannot be created by a message.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	return &crosspile.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) validate(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (OwnedConfig, error) {
	current := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, current); err != nil {
		return nil, errors.Wrap(err, "load current configuration")
	}
	owner := current.GetOwner()
	if owner == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}
	conf, err := messageConfig(tx, h.config)
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "new configuration")
	}
	return conf, nil
}

// messageConfig extracts the "Config" field of the transaction message. The
// field must be of the same type as the handled configuration.
func messageConfig(tx crosspile.Tx, want OwnedConfig) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Config")
	if !field.IsValid() || field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrMsg, `"Config" field is required`)
	}
	conf, ok := field.Interface().(OwnedConfig)
	if !ok || reflect.TypeOf(conf) != reflect.TypeOf(want) {
		return nil, errors.Wrapf(errors.ErrType, `"Config" field is %s`, field.Type())
	}
	return conf, nil
}
