/*
Package sqldataset provides dataset readers and writers that use SQL
databases as backends.

Samples are stored on a samples table with a column for each feature
and one for the label. Continuous features are stored as floating point
numbers and discrete ones, label included, as text.

Each database engine is supported through an implementation of the
Adapter interface. See the sqlite3adapter and pgadapter packages.
*/
package sqldataset
