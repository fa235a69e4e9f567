// Package naming derives every casing variant of a type or field name from
// its canonical title-case form.
//
// All transforms are pure and total over non-empty identifiers:
//
//	UserPoolId -> user_pool_id   (snake)
//	UserPoolId -> user-pool-id   (kebab)
//	UserPoolId -> USER_POOL_ID   (upper snake)
package naming
